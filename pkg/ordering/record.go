package ordering

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by value types stored in an ordered collection.
// With* methods return a modified copy.
type Record[T any] interface {
	RecordID() uuid.UUID
	RecordOrder() int
	RecordActive() bool
	WithID(id uuid.UUID) T
	WithOrder(order int) T
}

// Timestamped records get their timestamps refreshed on create and update.
type Timestamped[T any] interface {
	Touch(now time.Time) T
}

type Position struct {
	ID    uuid.UUID
	Order int
}

// PositionsOf assigns order i to the id at index i.
func PositionsOf(ids []uuid.UUID) []Position {
	positions := make([]Position, len(ids))
	for i, id := range ids {
		positions[i] = Position{ID: id, Order: i}
	}
	return positions
}

func IDs[T Record[T]](records []T) []uuid.UUID {
	ids := make([]uuid.UUID, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return ids
}

func touch[T Record[T]](record T, now time.Time) T {
	if ts, ok := any(record).(Timestamped[T]); ok {
		return ts.Touch(now)
	}
	return record
}
