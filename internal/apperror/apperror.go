// Package apperror defines the domain error kinds the service layer returns.
//
// Every outcome here is expected and recoverable — the transport layer
// translates kinds into user-facing messages and HTTP status codes. Only
// persistence failures (wrapped raw) are considered fatal by callers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// AppError carries a sentinel kind plus the human-readable detail the
// transport layer renders. Field and Count are optional, filled only by the
// constructors that need them.
type AppError struct {
	Err     error  // sentinel kind, for errors.Is
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
	Count   int    // optional: number of notes blocking a status removal
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidStatus reports a create/retag attempt with a status that is not a
// current member of the owner's vocabulary.
func InvalidStatus(status string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("status %q is not in your list of statuses", status),
		Field:   "status",
	}
}

// StatusInUse reports a removal attempt for a status still referenced by
// count of the owner's notes. The notes must be retagged or deleted first.
func StatusInUse(status string, count int) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("status %q is still used by %d note(s)", status, count),
		Field:   "status",
		Count:   count,
	}
}

// LastStatus reports a removal that would leave the vocabulary empty.
// A user must always keep at least one status.
func LastStatus(status string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("cannot remove %q: at least one status must remain", status),
		Field:   "status",
	}
}

// OwnershipMismatch reports an operation on a note owned by a different user.
func OwnershipMismatch(resource, id string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: fmt.Sprintf("%s %s belongs to another user", resource, id),
	}
}
