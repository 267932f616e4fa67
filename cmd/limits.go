package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"cylinder-sync/cmd/bootstrap"
	"cylinder-sync/internal/usecase/queries"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

func newLimitsCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "limits",
		Short:        "Print the effective rate limit policies",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var q queries.LimitQueries
			app := fx.New(
				bootstrap.ConfigModule,
				bootstrap.LoggerModule,
				bootstrap.GovernorModule,
				fx.Provide(queries.NewLimitQueries),
				fx.NopLogger,
				fx.Populate(&q),
			)
			if err := app.Err(); err != nil {
				return err
			}
			return printPolicies(cmd.OutOrStdout(), rootOpts.Format, q.ListPolicies())
		},
	}
}

func printPolicies(out io.Writer, format string, policies []queries.PolicyView) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(policies)
	case "yaml":
		return yaml.NewEncoder(out).Encode(policies)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "CLASS\tMAX\tWINDOW\n")
	for _, p := range policies {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Class, p.MaxRequests, time.Duration(p.WindowSeconds)*time.Second)
	}
	return tw.Flush()
}
