package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/cycleprof/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get())

			return err
		},
	}
}
