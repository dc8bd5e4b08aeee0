//go:build arm64

package cpuclock

const counterName = "cntvct_el0"

// readCycles reads the virtual counter.
// Implemented in clock_arm64.s.
func readCycles() uint64
