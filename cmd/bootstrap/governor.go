package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"cylinder-sync/internal/pkg/clock"
	"cylinder-sync/internal/pkg/config"
	"cylinder-sync/internal/usecase/governor"

	"go.uber.org/fx"
)

var GovernorModule = fx.Module("governor",
	fx.Provide(
		clock.NewRealClock,
		NewGovernor,
	),
)

// NewGovernor builds the process-wide rate governor and runs its sweeper
// for the lifetime of the app.
func NewGovernor(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (*governor.Governor, error) {
	g, err := governor.NewFromConfig(cfg, clk, logger)
	if err != nil {
		return nil, err
	}

	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			wg.Add(1)
			go func() {
				defer wg.Done()
				g.Run(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			wg.Wait()
			return nil
		},
	})

	return g, nil
}
