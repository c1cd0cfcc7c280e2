package usecase

import "errors"

// Failure taxonomy surfaced to the façade. Wrapped with %w at the point
// of failure and matched with errors.Is at the handlers.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
	ErrStorage   = errors.New("storage fault")
	ErrDecode    = errors.New("decode fault")
)
