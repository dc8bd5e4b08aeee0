package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Environment variables consulted when the matching flag is left empty.
const (
	EnvLevel  = "CYCLEPROF_LOG_LEVEL"
	EnvFormat = "CYCLEPROF_LOG_FORMAT"
)

// Flags names the flags a [Config] registers.
type Flags struct {
	Level  string
	Format string
}

// NewConfig creates a [Config] bound to these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f, getenv: os.Getenv}
}

// Config resolves the log level and format for a command.
//
// Each setting comes from its flag, then from [EnvLevel] or [EnvFormat], then
// from [LevelInfo] or [FormatAuto].
type Config struct {
	getenv func(string) string

	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a [Config] using the --log-level and --log-format flags.
func NewConfig() *Config {
	return Flags{Level: "log-level", Format: "log-format"}.NewConfig()
}

// RegisterFlags adds the log flags to flags. Both default to empty so the
// environment can fill them in.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, "",
		fmt.Sprintf("log level, one of: %s (default $%s, then %s)",
			GetAllLevelStrings(), EnvLevel, LevelInfo))
	flags.StringVar(&c.Format, c.Flags.Format, "",
		fmt.Sprintf("log format, one of: %s (default $%s, then %s)",
			GetAllFormatStrings(), EnvFormat, FormatAuto))
}

// RegisterCompletions registers shell completions for the log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	completions := []struct {
		flag   string
		values []string
	}{
		{flag: c.Flags.Level, values: GetAllLevelStrings()},
		{flag: c.Flags.Format, values: GetAllFormatStrings()},
	}

	for _, cp := range completions {
		err := cmd.RegisterFlagCompletionFunc(cp.flag,
			cobra.FixedCompletions(cp.values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("register %s completion: %w", cp.flag, err)
		}
	}

	return nil
}

// Resolved returns the effective level and format strings.
func (c *Config) Resolved() (level, format string) {
	return c.setting(c.Level, EnvLevel, string(LevelInfo)),
		c.setting(c.Format, EnvFormat, string(FormatAuto))
}

func (c *Config) setting(flag, env, fallback string) string {
	if flag != "" {
		return flag
	}

	getenv := c.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	v := getenv(env)
	if v != "" {
		return v
	}

	return fallback
}

// NewHandler creates a [slog.Handler] writing to w with the resolved level
// and format.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	level, format := c.Resolved()

	h, err := NewHandlerFromStrings(w, level, format)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	return h, nil
}

// NewLogger creates a [*slog.Logger] writing to w whose records carry the
// name of the running command.
func (c *Config) NewLogger(w io.Writer, command string) (*slog.Logger, error) {
	h, err := c.NewHandler(w)
	if err != nil {
		return nil, err
	}

	return slog.New(h).With(slog.String("command", command)), nil
}
