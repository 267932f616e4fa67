package repository

import (
	"context"
	"log/slog"

	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/infra"
	"cylinder-sync/internal/infra/db"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/internal/pkg/pgconv"
	"cylinder-sync/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EntityStore is the Postgres remote store for every sync kind.
type EntityStore struct {
	db       db.DBTX
	beginner db.TxBeginner
	logger   *slog.Logger
}

func NewEntityStore(pool *pgxpool.Pool, logger *slog.Logger) *EntityStore {
	return NewEntityStoreWithDB(pool, pool, logger)
}

func NewEntityStoreWithDB(dbtx db.DBTX, beginner db.TxBeginner, logger *slog.Logger) *EntityStore {
	return &EntityStore{
		db:       dbtx,
		beginner: beginner,
		logger:   logger,
	}
}

func (s *EntityStore) FetchByIdentity(ctx context.Context, kind reconcile.Kind, id, organizationID string) (reconcile.Entity, error) {
	tbl, ok := tables[kind]
	if !ok {
		return nil, errs.Wrap(errs.ErrUnknownKind, kind.String())
	}
	// identities minted offline may not be UUIDs; they cannot exist remotely
	if !isUUID(id) || !isUUID(organizationID) {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, tbl.table+" row not found", nil)
	}

	e, err := tbl.scan(s.db.QueryRow(ctx, tbl.selectSQL(), id, organizationID))
	if err != nil {
		return nil, s.wrap(err, "failed to fetch "+tbl.table+" row")
	}
	return e, nil
}

// Write upserts e. A row owned by another organization is left untouched and
// reported as not found.
func (s *EntityStore) Write(ctx context.Context, e reconcile.Entity) (reconcile.Entity, error) {
	tbl, args, err := s.prepare(e)
	if err != nil {
		return nil, err
	}
	if !isUUID(e.Metadata().ID) {
		return nil, errs.Wrap(errs.ErrDomainValidation, "identity "+e.Metadata().ID+" is not a uuid")
	}

	stored, err := tbl.scan(s.db.QueryRow(ctx, tbl.upsertSQL(), args...))
	if err != nil {
		return nil, s.wrap(err, "failed to write "+tbl.table+" row")
	}
	return stored, nil
}

// Insert creates a row, assigning a fresh identity when e has none. A
// returned bottle scan also marks the bottle empty in the same transaction.
func (s *EntityStore) Insert(ctx context.Context, e reconcile.Entity) (reconcile.Entity, error) {
	tbl, args, err := s.prepare(e)
	if err != nil {
		return nil, err
	}
	switch id := e.Metadata().ID; {
	case id == "":
		args[0] = uuid.NewString()
	case !isUUID(id):
		return nil, errs.Wrap(errs.ErrDomainValidation, "identity "+id+" is not a uuid")
	}

	scan, isReturn := isReturnScan(e)
	if !isReturn {
		stored, err := tbl.scan(s.db.QueryRow(ctx, tbl.createSQL(), args...))
		if err != nil {
			return nil, s.wrap(err, "failed to insert "+tbl.table+" row")
		}
		return stored, nil
	}

	stored, err := shared.WithDefaultRetry(ctx, s.beginner, func(tx db.DBTX) (reconcile.Entity, error) {
		stored, err := tbl.scan(tx.QueryRow(ctx, tbl.createSQL(), args...))
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, markBottleEmptySQL, scan.BottleBarcode, scan.OrganizationID, pgconv.TimeToPgtype(scan.ScannedAt)); err != nil {
			return nil, err
		}
		return stored, nil
	})
	if err != nil {
		return nil, s.wrap(err, "failed to record returned bottle")
	}
	return stored, nil
}

func (s *EntityStore) prepare(e reconcile.Entity) (tableSpec, []any, error) {
	if reconcile.IsNil(e) {
		return tableSpec{}, nil, errs.Wrap(errs.ErrDomainValidation, "nil entity")
	}
	tbl, ok := tables[e.Kind()]
	if !ok {
		return tableSpec{}, nil, errs.Wrap(errs.ErrUnknownKind, e.Kind().String())
	}
	if !isUUID(e.Metadata().OrganizationID) {
		return tableSpec{}, nil, errs.Wrap(errs.ErrDomainValidation, "organization "+e.Metadata().OrganizationID+" is not a uuid")
	}
	args, ok := tbl.args(e)
	if !ok {
		return tableSpec{}, nil, errs.Wrap(errs.ErrDomainValidation, "entity does not match table "+tbl.table)
	}
	return tbl, args, nil
}

func (s *EntityStore) wrap(err error, msg string) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, msg, err)
	}
	return infra.WrapRepoErr(s.logger, infra.KindFromPg(err), msg, err)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
