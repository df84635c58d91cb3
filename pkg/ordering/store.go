package ordering

import (
	"context"

	"github.com/google/uuid"
)

// Store persists the records of one collection.
//
// ListByScope returns records ascending by order. MaxOrder returns -1 for an
// empty scope. BulkSetOrder is all-or-nothing: if any id is not a live record
// of the scope nothing is written and ErrNotFound is returned. Delete cascades
// to child scopes owned by the deleted record.
type Store[T Record[T]] interface {
	ListByScope(ctx context.Context, scope Scope, activeOnly bool) ([]T, error)
	MaxOrder(ctx context.Context, scope Scope) (int, error)
	BulkSetOrder(ctx context.Context, scope Scope, positions []Position) error
	GetByID(ctx context.Context, scope Scope, id uuid.UUID) (T, error)
	Create(ctx context.Context, scope Scope, record T) (T, error)
	Update(ctx context.Context, scope Scope, record T) (T, error)
	Delete(ctx context.Context, scope Scope, id uuid.UUID) error
}
