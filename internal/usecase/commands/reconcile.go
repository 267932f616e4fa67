package commands

//go:generate mockgen -source=reconcile.go -destination=../../../tests/mock/commands/reconcile.go -package=commandsmock

import (
	"context"
	"log/slog"

	"cylinder-sync/internal/domain/ratelimit"
	domreconcile "cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/internal/usecase/governor"
	"cylinder-sync/internal/usecase/reconciler"
	"cylinder-sync/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemStatus string

const (
	StatusApplied       ItemStatus = "applied"
	StatusAdoptedRemote ItemStatus = "adopted_remote"
	StatusCreated       ItemStatus = "created"
	StatusInSync        ItemStatus = "in_sync"
	StatusDeferred      ItemStatus = "deferred"
	StatusFailed        ItemStatus = "failed"
	StatusSkipped       ItemStatus = "skipped"
)

type BatchRequest struct {
	CallerID       string
	OrganizationID string
	Kind           domreconcile.Kind
	Strategy       domreconcile.Strategy
	Entities       []domreconcile.Entity
}

// BatchItem is the result for one entity. Entity is the copy the client
// should cache; it is nil for in-sync, failed and deferred items.
type BatchItem struct {
	ID                string
	Action            domreconcile.Action
	Fallback          domreconcile.Fallback
	Status            ItemStatus
	Entity            domreconcile.Entity
	RetryAfterSeconds int
	Error             string
}

type BatchResult struct {
	Kind     domreconcile.Kind
	Strategy domreconcile.Strategy
	Items    []BatchItem
}

// Count returns how many items ended in status.
func (r *BatchResult) Count(status ItemStatus) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}

type ReconcileCommands interface {
	ReconcileBatch(ctx context.Context, req BatchRequest) (*BatchResult, error)
}

// ConflictEngine is the detection and resolution surface used by the driver.
type ConflictEngine interface {
	Detect(ctx context.Context, locals []domreconcile.Entity, kind domreconcile.Kind, organizationID string) (reconciler.DetectReport, error)
	Resolve(ctx context.Context, c domreconcile.ConflictRecord, strategy domreconcile.Strategy) (domreconcile.Outcome, error)
}

type reconcileCommandsImpl struct {
	engine   ConflictEngine
	writer   shared.RemoteWriter
	governor *governor.Governor
	logger   *slog.Logger
}

func NewReconcileCommands(engine ConflictEngine, writer shared.RemoteWriter, gov *governor.Governor, logger *slog.Logger) ReconcileCommands {
	return &reconcileCommandsImpl{
		engine:   engine,
		writer:   writer,
		governor: gov,
		logger:   logger,
	}
}

// ReconcileBatch detects, resolves and applies one batch. Items fail or are
// deferred independently; only a denied or cancelled detection round fails
// the batch as a whole.
func (uc *reconcileCommandsImpl) ReconcileBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if !req.Kind.Valid() {
		return nil, errs.Wrap(errs.ErrUnknownKind, req.Kind.String())
	}

	detectOp := governor.Operation("reconcile", "detect", req.Kind.Table())
	report, err := governor.Call(ctx, uc.governor, req.CallerID, detectOp, ratelimit.ClassRead,
		func(ctx context.Context) (reconciler.DetectReport, error) {
			return uc.engine.Detect(ctx, req.Entities, req.Kind, req.OrganizationID)
		})
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Kind: req.Kind, Strategy: req.Strategy}

	for _, f := range report.Failed {
		result.Items = append(result.Items, BatchItem{ID: f.ID, Status: StatusFailed, Error: f.Err.Error()})
	}
	for _, id := range report.InSync {
		result.Items = append(result.Items, BatchItem{ID: id, Status: StatusInSync})
	}

	for _, c := range report.Conflicts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Items = append(result.Items, uc.applyConflict(ctx, req, c))
	}

	for _, e := range report.Missing {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Items = append(result.Items, uc.create(ctx, req, e))
	}

	uc.logger.Info("batch reconciled",
		slog.String("caller", req.CallerID),
		slog.String("kind", req.Kind.String()),
		slog.Int("entities", len(req.Entities)),
		slog.Int("applied", result.Count(StatusApplied)),
		slog.Int("created", result.Count(StatusCreated)),
		slog.Int("deferred", result.Count(StatusDeferred)),
		slog.Int("failed", result.Count(StatusFailed)))

	return result, nil
}

func (uc *reconcileCommandsImpl) applyConflict(ctx context.Context, req BatchRequest, c domreconcile.ConflictRecord) BatchItem {
	item := BatchItem{ID: c.ID}

	out, err := uc.engine.Resolve(ctx, c, req.Strategy)
	if err != nil {
		uc.logger.Warn("conflict rejected", slog.String("id", c.ID), slog.String("error", err.Error()))
		item.Status = StatusFailed
		item.Error = err.Error()
		return item
	}
	item.Action = out.Action
	item.Fallback = out.Fallback

	switch out.Action {
	case domreconcile.ActionSkip:
		item.Status = StatusSkipped
		return item
	case domreconcile.ActionUseRemote:
		item.Status = StatusAdoptedRemote
		item.Entity = out.Entity
		return item
	}

	write := uc.writer.Write
	target := out.Entity
	// a winning local scan is a separate physical scan, stored as a new row
	if scan, ok := out.Entity.(*domreconcile.ScanEvent); ok && out.Action == domreconcile.ActionUseLocal {
		fresh := *scan
		fresh.ID = uuid.NewString()
		target = &fresh
		write = uc.writer.Insert
	}

	stored, status, retry, err := uc.governedWrite(ctx, req, target, write)
	item.Status = status
	item.RetryAfterSeconds = retry
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Status = StatusApplied
	item.Entity = stored
	return item
}

func (uc *reconcileCommandsImpl) create(ctx context.Context, req BatchRequest, e domreconcile.Entity) BatchItem {
	item := BatchItem{ID: e.Metadata().ID}

	stored, status, retry, err := uc.governedWrite(ctx, req, e, uc.writer.Insert)
	item.Status = status
	item.RetryAfterSeconds = retry
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.ID = stored.Metadata().ID
	item.Status = StatusCreated
	item.Entity = stored
	return item
}

func (uc *reconcileCommandsImpl) governedWrite(
	ctx context.Context,
	req BatchRequest,
	e domreconcile.Entity,
	write func(context.Context, domreconcile.Entity) (domreconcile.Entity, error),
) (domreconcile.Entity, ItemStatus, int, error) {
	op := governor.Operation("reconcile", "write", req.Kind.Table())
	stored, err := governor.Call(ctx, uc.governor, req.CallerID, op, writeClass(req.Kind),
		func(ctx context.Context) (domreconcile.Entity, error) {
			return write(ctx, e)
		})

	if rl, ok := governor.AsRateLimited(err); ok {
		return nil, StatusDeferred, rl.RetryAfterSeconds, err
	}
	if err != nil {
		uc.logger.Warn("remote write failed",
			slog.String("kind", req.Kind.String()),
			slog.String("id", e.Metadata().ID),
			slog.String("error", err.Error()))
		return nil, StatusFailed, 0, errs.Wrap(errs.ErrRemoteWrite, err.Error())
	}
	return stored, "", 0, nil
}

func writeClass(kind domreconcile.Kind) ratelimit.Class {
	if kind == domreconcile.KindScanEvent {
		return ratelimit.ClassScan
	}
	return ratelimit.ClassWrite
}
