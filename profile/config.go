package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvOutput names the environment variable consulted for the report
// destination when [Config.Output] is empty.
const EnvOutput = "PROFILE_OUT"

// ErrOpenOutput indicates the report destination could not be opened.
var ErrOpenOutput = errors.New("open report output")

// Flags holds CLI flag names for profiler configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Output   string
	Format   string
	Capacity string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds profiler configuration for CLI applications. A zero-value
// Config reports text to standard output (or [EnvOutput]) with
// [DefaultCapacity] labels.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to create a [Profiler].
type Config struct {
	Flags Flags

	// Report destination path (empty = $PROFILE_OUT, then stdout).
	Output string
	// Report format, one of [GetAllFormatStrings] (empty = text).
	Format string
	// Maximum number of distinct labels (zero = [DefaultCapacity]).
	Capacity int
}

// NewConfig creates a new [Config] with default flag names and zero values.
// Use [Config.RegisterFlags] to add CLI flags, or set fields directly.
func NewConfig() *Config {
	f := Flags{
		Output:   "profile-out",
		Format:   "profile-format",
		Capacity: "profile-capacity",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiler flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Output, c.Flags.Output, "",
		fmt.Sprintf("write the cycle report to file (default $%s, then stdout)", EnvOutput))
	flags.StringVar(&c.Format, c.Flags.Format, string(FormatText),
		fmt.Sprintf("report format, one of: %s", GetAllFormatStrings()))
	flags.IntVar(&c.Capacity, c.Flags.Capacity, DefaultCapacity, "maximum number of distinct block labels")
}

// RegisterCompletions registers shell completions for profiler flags on cmd.
// The output flag keeps default file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Capacity, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Capacity, err)
	}

	return nil
}

// OutputPath returns the configured report destination, falling back to
// [EnvOutput]. An empty result means standard output.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}

	return os.Getenv(EnvOutput)
}

// NewProfiler creates a new [Profiler] using this [Config], opening the
// report destination. Options are applied after the configured values.
// Call [Profiler.Close] to release the destination.
func (c *Config) NewProfiler(opts ...Option) (*Profiler, error) {
	format := FormatText
	if c.Format != "" {
		f, err := ParseFormat(c.Format)
		if err != nil {
			return nil, err
		}

		format = f
	}

	var (
		w      io.Writer = os.Stdout
		closer io.Closer
	)

	if path := c.OutputPath(); path != "" {
		f, err := os.Create(path) //nolint:gosec // Report path from CLI flag is expected.
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpenOutput, err)
		}

		w, closer = f, f
	}

	opts = append([]Option{WithFormat(format), WithCapacity(c.Capacity)}, opts...)

	p := New(w, opts...)
	p.closer = closer

	return p, nil
}
