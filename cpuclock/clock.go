package cpuclock

// Read returns the current value of the cycle counter.
func Read() uint64 {
	return readCycles()
}

// Name returns the name of the counter behind [Read].
func Name() string {
	return counterName
}
