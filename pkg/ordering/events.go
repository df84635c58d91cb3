package ordering

import (
	"github.com/google/uuid"
)

type CreatedEvent struct {
	Scope Scope
	ID    uuid.UUID
	Order int
	Actor uuid.UUID
}

type UpdatedEvent struct {
	Scope Scope
	ID    uuid.UUID
	Actor uuid.UUID
}

type DeletedEvent struct {
	Scope Scope
	ID    uuid.UUID
	Actor uuid.UUID
}

type ReorderedEvent struct {
	Scope      Scope
	OrderedIDs []uuid.UUID
	Actor      uuid.UUID
}
