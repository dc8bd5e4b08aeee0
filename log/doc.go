// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports several output formats ([FormatJSON], [FormatLogfmt],
// [FormatText], and [FormatAuto], which picks text on a terminal and logfmt
// elsewhere) and severity levels ([LevelError], [LevelWarn], [LevelInfo], and
// [LevelDebug]). Use [NewHandler] to create a handler directly, or use
// [Config] with CLI flag integration via [github.com/spf13/pflag] and shell
// completion support via [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a handler
// at startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	logger, err := cfg.NewLogger(os.Stderr, cmd.Name())
//	slog.SetDefault(logger)
//
// Flags left empty fall back to [EnvLevel] and [EnvFormat].
package log
