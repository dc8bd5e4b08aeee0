// Command cycleprof runs an instrumented workload under the cycle profiler and
// inspects the machine's cycle counter.
//
// # Usage
//
//	cycleprof run [flags]        profile the built-in workload
//	cycleprof calibrate [flags]  measure the cycle counter frequency
//	cycleprof schema             print the JSON Schema of structured reports
//	cycleprof version            print build metadata
//
// The report destination is --profile-out, else $PROFILE_OUT, else stdout.
// Log settings fall back to $CYCLEPROF_LOG_LEVEL and $CYCLEPROF_LOG_FORMAT.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/cycleprof/log"
)

func main() {
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "cycleprof",
		Short: "Hierarchical CPU cycle profiler",
		Long: `cycleprof attributes hardware cycles to named blocks of code, separating
time spent in each block itself from time spent in the blocks it calls.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logCfg.NewLogger(cmd.ErrOrStderr(), cmd.Name())
			if err != nil {
				return err
			}

			slog.SetDefault(logger)

			return nil
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newCalibrateCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
