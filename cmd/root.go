package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	Format string // "text" | "json" | "yaml"
}

var validFormats = []string{"text", "json", "yaml"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cylinder-sync",
		Short: "Sync reconciliation server and tools",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newReconcileCommand(opts))
	cmd.AddCommand(newLimitsCommand(opts))

	// serve stays the default so existing deployments keep working
	cmd.RunE = func(_ *cobra.Command, _ []string) error {
		return runServe()
	}

	return cmd
}
