//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris

package cpuclock

import (
	"fmt"

	"github.com/tklauser/go-sysconf"
	"golang.org/x/sys/unix"
)

// OSFrequency returns the resolution of [ReadOS] in units per second: the
// kernel clock tick rate scaled by 10 000, which is microseconds on a 100 Hz
// system.
func OSFrequency() uint64 {
	ticks, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		panic(fmt.Errorf("%w: sysconf(SC_CLK_TCK): %w", ErrBrokenTimer, err))
	}

	if ticks <= 0 {
		panic(fmt.Errorf("%w: sysconf(SC_CLK_TCK) returned %d", ErrBrokenTimer, ticks))
	}

	return uint64(ticks) * 10_000
}

// ReadOS returns the wall-clock time from gettimeofday, in units of
// [OSFrequency].
func ReadOS() uint64 {
	return readOS(OSFrequency())
}

func readOS(freq uint64) uint64 {
	var tv unix.Timeval

	err := unix.Gettimeofday(&tv)
	if err != nil {
		panic(fmt.Errorf("%w: gettimeofday: %w", ErrBrokenTimer, err))
	}

	sec, nsec := tv.Unix()
	usec := uint64(nsec / 1000)

	return freq*uint64(sec) + usec*freq/1_000_000
}
