package governor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/pkg/clock"
	"cylinder-sync/internal/pkg/config"
)

const (
	DefaultSweepInterval = time.Minute
	DefaultRetention     = 5 * time.Minute
)

// Governor admits or denies outbound operations per (caller, operation)
// using fixed windows. All window state lives in memory and is lost on
// restart. Calls for the same key are serialized by a single mutex.
type Governor struct {
	mu      sync.Mutex
	windows map[ratelimit.Key]*ratelimit.Window

	table         *ratelimit.Table
	clock         clock.Clock
	logger        *slog.Logger
	retention     time.Duration
	sweepInterval time.Duration
}

type Settings struct {
	SweepInterval time.Duration
	Retention     time.Duration
}

// Status is a read-only view of a key's budget.
type Status struct {
	Remaining      int
	ResetInSeconds int
}

func New(table *ratelimit.Table, clk clock.Clock, logger *slog.Logger, s Settings) *Governor {
	if s.SweepInterval <= 0 {
		s.SweepInterval = DefaultSweepInterval
	}
	if s.Retention <= 0 {
		s.Retention = DefaultRetention
	}
	// an entry is only dropped once no window in the table could still be open
	s.Retention = max(s.Retention, table.LongestWindow())

	return &Governor{
		windows:       make(map[ratelimit.Key]*ratelimit.Window),
		table:         table,
		clock:         clk,
		logger:        logger,
		retention:     s.Retention,
		sweepInterval: s.SweepInterval,
	}
}

func NewFromConfig(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*Governor, error) {
	table, err := ratelimit.DefaultTable().WithOverrides(cfg.RateLimit.Overrides)
	if err != nil {
		return nil, err
	}
	return New(table, clk, logger, Settings{
		SweepInterval: cfg.RateLimit.SweepInterval,
		Retention:     cfg.RateLimit.Retention,
	}), nil
}

// Check records one call for (caller, operation) under the class policy.
func (g *Governor) Check(caller, operation string, class ratelimit.Class) ratelimit.Decision {
	key := ratelimit.Key{Caller: caller, Operation: operation}
	policy := g.table.Lookup(class)

	g.mu.Lock()
	w, ok := g.windows[key]
	if !ok {
		w = &ratelimit.Window{}
		g.windows[key] = w
	}
	d := w.Admit(g.clock.Now(), policy)
	g.mu.Unlock()

	if !d.Allowed {
		g.logger.Warn("rate limit exceeded",
			slog.String("caller", caller),
			slog.String("operation", operation),
			slog.String("class", string(class)),
			slog.Int("retry_after_seconds", d.RetryAfterSeconds))
	}
	return d
}

// Status reports the budget left for a key without consuming it.
func (g *Governor) Status(caller, operation string, class ratelimit.Class) Status {
	policy := g.table.Lookup(class)

	g.mu.Lock()
	defer g.mu.Unlock()

	w, ok := g.windows[ratelimit.Key{Caller: caller, Operation: operation}]
	if !ok {
		return Status{Remaining: policy.MaxRequests}
	}
	left, resetIn := w.Peek(g.clock.Now(), policy)
	return Status{Remaining: left, ResetInSeconds: ratelimit.RetryAfterSeconds(resetIn)}
}

func (g *Governor) Reset(caller, operation string) {
	g.mu.Lock()
	delete(g.windows, ratelimit.Key{Caller: caller, Operation: operation})
	g.mu.Unlock()

	g.logger.Info("rate limit reset", slog.String("caller", caller), slog.String("operation", operation))
}

// ResetAll drops every window held by caller.
func (g *Governor) ResetAll(caller string) {
	g.mu.Lock()
	for key := range g.windows {
		if key.Caller == caller {
			delete(g.windows, key)
		}
	}
	g.mu.Unlock()

	g.logger.Info("all rate limits reset", slog.String("caller", caller))
}

// Clear drops every window of every caller.
func (g *Governor) Clear() {
	g.mu.Lock()
	clear(g.windows)
	g.mu.Unlock()
}

// Sweep drops entries idle for longer than the retention period and returns
// how many were removed.
func (g *Governor) Sweep() int {
	now := g.clock.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for key, w := range g.windows {
		if now.Sub(w.LastSeen) > g.retention {
			delete(g.windows, key)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick until ctx is done.
func (g *Governor) Run(ctx context.Context) {
	ticker := time.NewTicker(g.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := g.Sweep(); n > 0 {
				g.logger.Debug("rate limit entries swept", slog.Int("removed", n))
			}
		}
	}
}

// Len is the number of tracked keys.
func (g *Governor) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.windows)
}

func (g *Governor) Table() *ratelimit.Table {
	return g.table
}

// Operation joins operation name parts, e.g. Operation("reconcile", "write", "bottles").
func Operation(parts ...string) string {
	return strings.Join(parts, ".")
}
