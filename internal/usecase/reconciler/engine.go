package reconciler

import (
	"context"
	"log/slog"
	"time"

	domreconcile "cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/config"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

const (
	defaultReadTimeout        = 5 * time.Second
	defaultMaxConcurrentReads = 8
)

// Prompter lets an interactive client pick a strategy for an ask_user
// conflict. Returning ask_user again, or an error, keeps the server_wins
// fallback.
type Prompter interface {
	Choose(ctx context.Context, c domreconcile.ConflictRecord) (domreconcile.Strategy, error)
}

// Engine detects conflicts between locally cached entities and the remote
// store, and resolves them.
type Engine struct {
	reader             shared.RemoteReader
	logger             *slog.Logger
	readTimeout        time.Duration
	maxConcurrentReads int
	prompter           Prompter
}

func NewEngine(reader shared.RemoteReader, cfg config.Config, logger *slog.Logger) *Engine {
	e := &Engine{
		reader:             reader,
		logger:             logger,
		readTimeout:        cfg.Sync.ReadTimeout,
		maxConcurrentReads: cfg.Sync.MaxConcurrentReads,
	}
	if e.readTimeout <= 0 {
		e.readTimeout = defaultReadTimeout
	}
	if e.maxConcurrentReads <= 0 {
		e.maxConcurrentReads = defaultMaxConcurrentReads
	}
	return e
}

func (e *Engine) WithPrompter(p Prompter) *Engine {
	e.prompter = p
	return e
}

// ReadFailure is an entity whose remote copy could not be read.
type ReadFailure struct {
	ID  string
	Err error
}

// DetectReport sorts a detection pass. Every slice keeps input order.
type DetectReport struct {
	Conflicts []domreconcile.ConflictRecord
	// InSync holds IDs whose local and remote versions are equal.
	InSync []string
	// Missing holds pending creations: entities with no identity or no remote row.
	Missing []domreconcile.Entity
	Failed  []ReadFailure
}

type detectState int

const (
	stateNone detectState = iota
	stateConflict
	stateInSync
	stateMissing
	stateFailed
)

type detection struct {
	state    detectState
	conflict domreconcile.ConflictRecord
	err      error
}

// DetectConflicts returns one ConflictRecord per local entity whose remote
// copy carries a different version.
func (e *Engine) DetectConflicts(ctx context.Context, locals []domreconcile.Entity, kind domreconcile.Kind, organizationID string) ([]domreconcile.ConflictRecord, error) {
	report, err := e.Detect(ctx, locals, kind, organizationID)
	return report.Conflicts, err
}

// Detect reads the remote copy of every local entity, at most
// maxConcurrentReads at a time. Read failures are logged and reported, never
// returned. If ctx ends early the report covers the reads that finished and
// ctx.Err() is returned with it.
func (e *Engine) Detect(ctx context.Context, locals []domreconcile.Entity, kind domreconcile.Kind, organizationID string) (DetectReport, error) {
	results := make([]detection, len(locals))

	var g errgroup.Group
	g.SetLimit(e.maxConcurrentReads)

	for i, local := range locals {
		if ctx.Err() != nil {
			break
		}
		if domreconcile.IsNil(local) {
			e.logger.Warn("skipping nil entity", slog.Int("index", i), slog.String("kind", kind.String()))
			continue
		}
		if local.Metadata().ID == "" {
			e.logger.Debug("entity has no identity yet", slog.Int("index", i), slog.String("kind", kind.String()))
			results[i] = detection{state: stateMissing}
			continue
		}

		g.Go(func() error {
			results[i] = e.detectOne(ctx, kind, organizationID, local)
			return nil
		})
	}
	_ = g.Wait()

	var report DetectReport
	for i, r := range results {
		switch r.state {
		case stateConflict:
			report.Conflicts = append(report.Conflicts, r.conflict)
		case stateInSync:
			report.InSync = append(report.InSync, locals[i].Metadata().ID)
		case stateMissing:
			report.Missing = append(report.Missing, locals[i])
		case stateFailed:
			report.Failed = append(report.Failed, ReadFailure{ID: locals[i].Metadata().ID, Err: r.err})
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (e *Engine) detectOne(ctx context.Context, kind domreconcile.Kind, organizationID string, local domreconcile.Entity) detection {
	id := local.Metadata().ID

	readCtx, cancel := context.WithTimeout(ctx, e.readTimeout)
	defer cancel()

	remote, err := e.reader.FetchByIdentity(readCtx, kind, id, organizationID)
	switch {
	case err == nil && domreconcile.IsNil(remote):
		return detection{state: stateMissing}
	case errs.Is(err, domreconcile.ErrRemoteNotFound):
		return detection{state: stateMissing}
	case err != nil && ctx.Err() != nil:
		// caller gave up; not a read failure
		return detection{}
	case err != nil:
		e.logger.Warn("remote read failed, skipping entity",
			slog.String("kind", kind.String()),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return detection{state: stateFailed, err: errs.Wrap(errs.ErrRemoteRead, err.Error())}
	}

	record, err := domreconcile.NewConflictRecord(kind, local, remote)
	switch {
	case err == nil:
		return detection{state: stateConflict, conflict: record}
	case errs.Is(err, domreconcile.ErrNoConflict):
		return detection{state: stateInSync}
	default:
		e.logger.Warn("remote copy does not pair with local entity",
			slog.String("kind", kind.String()),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return detection{state: stateFailed, err: err}
	}
}

// Resolve decides one conflict. For ask_user the configured Prompter, if
// any, picks the strategy; otherwise the documented fallback applies.
func (e *Engine) Resolve(ctx context.Context, c domreconcile.ConflictRecord, strategy domreconcile.Strategy) (domreconcile.Outcome, error) {
	if strategy == domreconcile.StrategyAskUser && e.prompter != nil {
		chosen, err := e.prompter.Choose(ctx, c)
		switch {
		case err != nil:
			e.logger.Warn("prompt failed, falling back",
				slog.String("id", c.ID),
				slog.String("error", err.Error()))
		case chosen != domreconcile.StrategyAskUser:
			strategy = chosen
		}
	}

	out, err := domreconcile.Resolve(c, strategy)
	if err != nil {
		return out, err
	}

	if out.Fallback != domreconcile.FallbackNone {
		e.logger.Warn("conflict resolved by fallback",
			slog.String("id", c.ID),
			slog.String("kind", c.Kind.String()),
			slog.String("strategy", string(strategy)),
			slog.String("fallback", string(out.Fallback)))
	}
	return out, nil
}
