package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports.go -package=sharedmock

import (
	"context"

	"cylinder-sync/internal/domain/reconcile"
)

// RemoteReader looks up the authoritative copy of one entity. A missing row
// is reported as reconcile.ErrRemoteNotFound.
type RemoteReader interface {
	FetchByIdentity(ctx context.Context, kind reconcile.Kind, id, organizationID string) (reconcile.Entity, error)
}

// RemoteWriter persists resolved entities and returns the stored copy.
type RemoteWriter interface {
	// Write upserts an existing entity keyed by its identity and organization.
	Write(ctx context.Context, e reconcile.Entity) (reconcile.Entity, error)
	// Insert creates a new row, assigning an identity when e has none.
	Insert(ctx context.Context, e reconcile.Entity) (reconcile.Entity, error)
}

type RemoteStore interface {
	RemoteReader
	RemoteWriter
}
