//go:build amd64

package cpuclock

const counterName = "rdtsc"

// readCycles reads the time stamp counter.
// Implemented in clock_amd64.s.
func readCycles() uint64
