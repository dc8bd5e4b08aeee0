package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/cycleprof/profile"
	"go.jacobcolvin.com/cycleprof/workload"
)

func newRunCmd() *cobra.Command {
	profCfg := profile.NewConfig()
	wl := workload.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Profile the built-in workload",
		Long: `run executes a deterministic workload (byte generation, hashing,
compression, direct and mutual recursion) with every stage wrapped in a
profile block, then writes the cycle report.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(profCfg, wl)
		},
	}

	profCfg.RegisterFlags(cmd.Flags())

	flags := cmd.Flags()
	flags.IntVar(&wl.Size, "size", wl.Size, "bytes to generate, hash and compress")
	flags.Uint64Var(&wl.Seed, "seed", wl.Seed, "seed for generated bytes")
	flags.IntVar(&wl.FibDepth, "fib", wl.FibDepth, "argument to the recursive Fibonacci stage")
	flags.IntVar(&wl.PingPongDepth, "ping-pong", wl.PingPongDepth, "depth of the mutually recursive stage")

	completionErr := profCfg.RegisterCompletions(cmd)
	if completionErr != nil {
		slog.Warn("register completions", slog.Any("err", completionErr))
	}

	return cmd
}

func run(profCfg *profile.Config, wl workload.Config) (err error) {
	p, err := profCfg.NewProfiler()
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, p.Close())
	}()

	slog.Debug("starting session",
		slog.String("output", profCfg.OutputPath()),
		slog.Int("size", wl.Size),
	)

	p.Start()

	res, err := workload.Run(p, wl)
	if err != nil {
		return fmt.Errorf("run workload: %w", err)
	}

	slog.Debug("workload finished",
		slog.String("checksum", fmt.Sprintf("%016x", res.Checksum)),
		slog.Int("compressed", res.CompressedSize),
		slog.Uint64("fib", res.Fib),
	)

	return p.EndAndReport()
}
