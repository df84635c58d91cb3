package ordering

import (
	"github.com/google/uuid"
)

// ValidatePermutation checks that ordered is a bijection over current.
func ValidatePermutation(current, ordered []uuid.UUID) error {
	if len(ordered) == 0 {
		return invalid("orderedIds", "must not be empty")
	}

	live := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		live[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(ordered))
	var duplicates, foreign []uuid.UUID
	for _, id := range ordered {
		if _, ok := seen[id]; ok {
			duplicates = append(duplicates, id)
			continue
		}
		seen[id] = struct{}{}
		if _, ok := live[id]; !ok {
			foreign = append(foreign, id)
		}
	}
	if len(duplicates) > 0 {
		return invalid("orderedIds", "duplicate ids", duplicates...)
	}
	if len(foreign) > 0 {
		return invalid("orderedIds", "ids do not belong to scope", foreign...)
	}

	var missing []uuid.UUID
	for _, id := range current {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return invalid("orderedIds", "missing ids", missing...)
	}
	return nil
}

// Move removes the element at from and inserts it at to, returning a new slice.
// Out-of-range indexes return a copy of items unchanged.
func Move[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return out
	}
	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out
}

func isContiguous[T Record[T]](records []T) bool {
	for i, r := range records {
		if r.RecordOrder() != i {
			return false
		}
	}
	return true
}
