package errs

import "errors"

// Sentinel errors shared by the reconciliation and rate-limit layers
var (
	// Reconciliation errors
	ErrInvalidConflict = errors.New("invalid conflict record")
	ErrRemoteRead      = errors.New("remote read failed")
	ErrRemoteNotFound  = errors.New("remote row not found")
	ErrRemoteWrite     = errors.New("remote write failed")
	ErrUnknownKind     = errors.New("unknown entity kind")
	ErrUnknownStrategy = errors.New("unknown resolution strategy")

	// Rate limit errors
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInvalidPolicy     = errors.New("invalid rate limit policy")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
