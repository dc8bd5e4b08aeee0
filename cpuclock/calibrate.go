package cpuclock

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"
	"time"
)

// CalibrationWindow is how much wall-clock time [EstimateFrequency] spends
// counting cycles.
const CalibrationWindow = 100 * time.Millisecond

// ErrBrokenTimer indicates the cycle counter or the OS wall clock cannot be
// used for measurement.
var ErrBrokenTimer = errors.New("broken timer")

// Frequency returns the cycle counter frequency in Hz, measured with
// [EstimateFrequency] on first use and cached for the life of the process.
var Frequency = sync.OnceValue(EstimateFrequency)

// EstimateFrequency measures how many cycles elapse during
// [CalibrationWindow] of wall-clock time and returns the counter frequency in
// Hz. It busy-waits for the whole window.
func EstimateFrequency() uint64 {
	osFreq := OSFrequency()

	return estimate(readCycles, func() uint64 { return readOS(osFreq) }, osFreq, CalibrationWindow)
}

// estimate spins on readWall until window has elapsed and scales the cycles
// counted meanwhile to one second. wallFreq is the unit rate of readWall.
func estimate(readCycles, readWall func() uint64, wallFreq uint64, window time.Duration) uint64 {
	waitTime := wallFreq * uint64(window.Milliseconds()) / 1000

	cyclesStart := readCycles()
	wallStart := readWall()

	var wallElapsed uint64
	for wallElapsed < waitTime {
		wallElapsed = readWall() - wallStart
	}

	cyclesElapsed := readCycles() - cyclesStart

	if wallElapsed == 0 {
		panic(fmt.Errorf("%w: no wall-clock time elapsed during calibration", ErrBrokenTimer))
	}

	hi, lo := bits.Mul64(wallFreq, cyclesElapsed)
	if hi >= wallElapsed {
		panic(fmt.Errorf("%w: calibrated frequency overflows uint64", ErrBrokenTimer))
	}

	freq, _ := bits.Div64(hi, lo, wallElapsed)

	return freq
}
