package log

// SetGetenv replaces the environment lookup used by c.
func (c *Config) SetGetenv(getenv func(string) string) {
	c.getenv = getenv
}
