package ordering

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/pkg/serrors"
)

var (
	ErrUnauthorized = serrors.NewError("UNAUTHORIZED", "authentication required", "Errors.Unauthorized")
	ErrInvalidInput = serrors.NewError("INVALID_INPUT", "invalid input", "Errors.InvalidInput")
	ErrNotFound     = serrors.NewError("NOT_FOUND", "record not found", "Errors.NotFound")
	ErrConflict     = serrors.NewError("CONFLICT", "scope is being modified concurrently", "Errors.Conflict")
	ErrStoreFailure = serrors.NewError("STORE_FAILURE", "store failure", "Errors.StoreFailure")
)

// InvalidInputError names the offending field and, for permutations, the offending ids.
type InvalidInputError struct {
	Field  string
	Reason string
	IDs    []uuid.UUID
}

func invalid(field, reason string, ids ...uuid.UUID) error {
	return &InvalidInputError{Field: field, Reason: reason, IDs: ids}
}

func (e *InvalidInputError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if len(e.IDs) == 0 {
		return msg
	}
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return msg + " (" + strings.Join(ids, ", ") + ")"
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// StoreFailureError wraps an error returned by the persistence layer.
// After a failed reorder the stored order is unknown and callers must re-fetch.
type StoreFailureError struct {
	Op  string
	Err error
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreFailure.Message, e.Op, e.Err)
}

func (e *StoreFailureError) Unwrap() []error {
	return []error{ErrStoreFailure, e.Err}
}
