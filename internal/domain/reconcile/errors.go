package reconcile

import (
	"fmt"

	"cylinder-sync/internal/pkg/errs"
)

var (
	// ErrNoConflict is returned when both sides carry the same version.
	ErrNoConflict = errs.New("versions are identical")
	// ErrRemoteNotFound is returned by remote readers when no row matches.
	ErrRemoteNotFound = errs.ErrRemoteNotFound
)

// InvalidConflictError reports a ConflictRecord that breaks its invariants.
// It is a programming error on the caller's side and is never resolved.
type InvalidConflictError struct {
	ID     string
	Reason string
}

func (e *InvalidConflictError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid conflict: %s", e.Reason)
	}
	return fmt.Sprintf("invalid conflict %s: %s", e.ID, e.Reason)
}

func (e *InvalidConflictError) Is(target error) bool {
	return target == errs.ErrInvalidConflict
}

func invalid(id, reason string) error {
	return &InvalidConflictError{ID: id, Reason: reason}
}
