package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/cycleprof/cpuclock"
)

func newCalibrateCmd() *cobra.Command {
	var runs int

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure the cycle counter frequency",
		Long: fmt.Sprintf(`calibrate estimates the cycle counter frequency by counting cycles over
%v of wall-clock time, repeating the measurement to show its spread.`,
			cpuclock.CalibrationWindow),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1, got %d", runs)
			}

			infos, err := cpu.InfoWithContext(cmd.Context())
			if err != nil {
				slog.Warn("read host cpu info", slog.Any("err", err))
			}

			return calibrate(cmd.OutOrStdout(), runs, infos, cpuclock.EstimateFrequency)
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 2, "number of calibration runs")

	return cmd
}

func calibrate(w io.Writer, runs int, infos []cpu.InfoStat, estimate func() uint64) error {
	fmt.Fprintf(w, "counter: %s\n", cpuclock.Name())

	if len(infos) > 0 {
		fmt.Fprintf(w, "cpu: %s (nominal %.0fMHz)\n", infos[0].ModelName, infos[0].Mhz)
	}

	freqs := make([]uint64, 0, runs)
	for i := range runs {
		f := estimate()
		freqs = append(freqs, f)

		fmt.Fprintf(w, "run %d: %dhz\n", i+1, f)
	}

	lo, hi := slices.Min(freqs), slices.Max(freqs)
	if lo == 0 {
		return fmt.Errorf("%w: estimated frequency is zero", cpuclock.ErrBrokenTimer)
	}

	_, err := fmt.Fprintf(w, "spread: %.2f%%\n", 100*float64(hi-lo)/float64(lo))
	if err != nil {
		return fmt.Errorf("write calibration: %w", err)
	}

	return nil
}
