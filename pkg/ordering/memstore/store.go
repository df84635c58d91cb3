// Package memstore is a process-local ordering.Store used when no database is configured and in tests.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/pkg/ordering"
)

// DeleteHook runs after a record is removed, outside the store lock.
type DeleteHook func(ctx context.Context, scope ordering.Scope, id uuid.UUID)

type entry[T ordering.Record[T]] struct {
	scope  ordering.Scope
	record T
}

type Store[T ordering.Record[T]] struct {
	mu       sync.RWMutex
	records  map[uuid.UUID]entry[T]
	onDelete []DeleteHook
	// fail, when set, is returned by every write. Used to simulate store outages.
	fail error
}

func New[T ordering.Record[T]]() *Store[T] {
	return &Store[T]{records: make(map[uuid.UUID]entry[T])}
}

// OnDelete registers a hook, typically a cascade into a child collection.
func (s *Store[T]) OnDelete(hook DeleteHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDelete = append(s.onDelete, hook)
}

// FailWrites makes subsequent writes return err; nil restores normal behavior.
func (s *Store[T]) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *Store[T]) ListByScope(_ context.Context, scope ordering.Scope, activeOnly bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, e := range s.records {
		if e.scope != scope {
			continue
		}
		if activeOnly && !e.record.RecordActive() {
			continue
		}
		out = append(out, e.record)
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := cmp.Compare(a.RecordOrder(), b.RecordOrder()); c != 0 {
			return c
		}
		return cmp.Compare(a.RecordID().String(), b.RecordID().String())
	})
	return out, nil
}

func (s *Store[T]) MaxOrder(_ context.Context, scope ordering.Scope) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxOrder := -1
	for _, e := range s.records {
		if e.scope == scope && e.record.RecordOrder() > maxOrder {
			maxOrder = e.record.RecordOrder()
		}
	}
	return maxOrder, nil
}

func (s *Store[T]) BulkSetOrder(_ context.Context, scope ordering.Scope, positions []ordering.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}

	for _, p := range positions {
		e, ok := s.records[p.ID]
		if !ok || e.scope != scope {
			return ordering.ErrNotFound
		}
	}
	for _, p := range positions {
		e := s.records[p.ID]
		e.record = e.record.WithOrder(p.Order)
		s.records[p.ID] = e
	}
	return nil
}

func (s *Store[T]) GetByID(_ context.Context, scope ordering.Scope, id uuid.UUID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.records[id]
	if !ok || e.scope != scope {
		var zero T
		return zero, ordering.ErrNotFound
	}
	return e.record, nil
}

func (s *Store[T]) Create(_ context.Context, scope ordering.Scope, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		var zero T
		return zero, s.fail
	}

	s.records[record.RecordID()] = entry[T]{scope: scope, record: record}
	return record, nil
}

func (s *Store[T]) Update(_ context.Context, scope ordering.Scope, record T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.fail != nil {
		return zero, s.fail
	}

	e, ok := s.records[record.RecordID()]
	if !ok || e.scope != scope {
		return zero, ordering.ErrNotFound
	}
	e.record = record
	s.records[record.RecordID()] = e
	return record, nil
}

func (s *Store[T]) Delete(ctx context.Context, scope ordering.Scope, id uuid.UUID) error {
	s.mu.Lock()
	if s.fail != nil {
		s.mu.Unlock()
		return s.fail
	}
	e, ok := s.records[id]
	if !ok || e.scope != scope {
		s.mu.Unlock()
		return ordering.ErrNotFound
	}
	delete(s.records, id)
	hooks := slices.Clone(s.onDelete)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx, scope, id)
	}
	return nil
}

// DeleteScope removes every record of scope. It is the cascade target for parent deletes.
func (s *Store[T]) DeleteScope(_ context.Context, scope ordering.Scope) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.records {
		if e.scope == scope {
			delete(s.records, id)
			n++
		}
	}
	return n
}
