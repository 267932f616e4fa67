package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"cylinder-sync/cmd/bootstrap"
	"cylinder-sync/internal/domain/reconcile"
	resdto "cylinder-sync/internal/handler/dto/response"
	"cylinder-sync/internal/pkg/config"
	"cylinder-sync/internal/usecase/commands"
	"cylinder-sync/internal/usecase/reconciler"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

type reconcileOptions struct {
	File           string
	OrganizationID string
	Caller         string
	Interactive    bool
}

func newReconcileCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &reconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a batch file against the database",
		Long: `Reconcile a JSON or YAML batch of locally cached entities against the
database, the same way POST /api/sync/reconcile does, and print the result.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReconcile(cmd.Context(), rootOpts, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "batch file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&opts.OrganizationID, "org", "", "organization id the batch belongs to")
	cmd.Flags().StringVar(&opts.Caller, "caller", "cli", "caller identity used for rate limiting")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "prompt for ask_user conflicts")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func runReconcile(ctx context.Context, rootOpts *rootOptions, opts *reconcileOptions, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := uuid.Parse(opts.OrganizationID); err != nil {
		return fmt.Errorf("invalid --org %q: %w", opts.OrganizationID, err)
	}

	req, err := loadBatchFile(opts.File)
	if err != nil {
		return err
	}

	var (
		cmds commands.ReconcileCommands
		cfg  config.Config
	)
	fxOpts := []fx.Option{
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&cmds, &cfg),
	}
	if opts.Interactive {
		prompter := newTerminalPrompter(in, out)
		fxOpts = append(fxOpts, fx.Decorate(func(e *reconciler.Engine) *reconciler.Engine {
			return e.WithPrompter(prompter)
		}))
	}

	app := fx.New(fxOpts...)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	defaultStrategy, err := reconcile.ParseStrategy(cfg.Sync.DefaultStrategy)
	if err != nil {
		defaultStrategy = reconcile.StrategyServerWins
	}
	batch, err := req.ToBatch(opts.Caller, opts.OrganizationID, defaultStrategy)
	if err != nil {
		return err
	}

	result, err := cmds.ReconcileBatch(ctx, batch)
	if err != nil {
		return err
	}
	return printBatchResult(out, rootOpts.Format, result)
}

func printBatchResult(out io.Writer, format string, result *commands.BatchResult) error {
	resp, err := resdto.FromBatchResult(result)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		return yaml.NewEncoder(out).Encode(resp)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tSTATUS\tACTION\tFALLBACK\tDETAIL\n")
	for _, it := range resp.Items {
		detail := it.Error
		if it.RetryAfterSeconds > 0 {
			detail = fmt.Sprintf("retry after %ds", it.RetryAfterSeconds)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.Status, dash(it.Action), dash(it.Fallback), dash(detail))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s (%s): applied=%d adopted_remote=%d created=%d in_sync=%d deferred=%d failed=%d skipped=%d\n",
		resp.Kind, resp.Strategy,
		resp.Summary["applied"], resp.Summary["adopted_remote"], resp.Summary["created"],
		resp.Summary["in_sync"], resp.Summary["deferred"], resp.Summary["failed"], resp.Summary["skipped"])
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
