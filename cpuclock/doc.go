// Package cpuclock reads the hardware cycle counter and converts cycle counts
// to wall-clock time.
//
// [Read] returns the raw counter: RDTSC on amd64, CNTVCT_EL0 on arm64, and a
// monotonic nanosecond clock elsewhere.
// The counter advances at a fixed but unknown rate, so [EstimateFrequency]
// measures it against the operating system's wall clock over
// [CalibrationWindow]:
//
//	start := cpuclock.Read()
//	work()
//	elapsed := cpuclock.Read() - start
//	seconds := float64(elapsed) / float64(cpuclock.Frequency())
//
// Differences between two reads are only meaningful within the same process.
// A timer that cannot be queried, or that does not advance during calibration,
// makes every measurement meaningless; those conditions panic with an error
// wrapping [ErrBrokenTimer] rather than returning an error.
package cpuclock
