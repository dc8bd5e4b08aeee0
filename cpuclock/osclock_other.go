//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris)

package cpuclock

import "time"

// OSFrequency returns the resolution of [ReadOS] in units per second.
// Platforms without sysconf report microseconds.
func OSFrequency() uint64 {
	return 1_000_000
}

// ReadOS returns the wall-clock time in microseconds.
func ReadOS() uint64 {
	return readOS(OSFrequency())
}

func readOS(_ uint64) uint64 {
	return uint64(time.Now().UnixMicro())
}
