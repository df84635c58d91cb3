package ordering

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/eventbus"
)

const defaultLockTimeout = 5 * time.Second

type Option[T Record[T]] func(*Manager[T])

func WithPublisher[T Record[T]](publisher eventbus.EventBus) Option[T] {
	return func(m *Manager[T]) {
		m.publisher = publisher
	}
}

func WithObserver[T Record[T]](observer Observer) Option[T] {
	return func(m *Manager[T]) {
		if observer != nil {
			m.observer = observer
		}
	}
}

// WithPublicPriority sorts the public projection by cmp ahead of order.
// The sort is stable, so records cmp considers equal keep their order.
func WithPublicPriority[T Record[T]](cmp func(a, b T) int) Option[T] {
	return func(m *Manager[T]) {
		m.publicCmp = cmp
	}
}

// WithLockTimeout bounds how long a write waits for another write on the same scope.
func WithLockTimeout[T Record[T]](d time.Duration) Option[T] {
	return func(m *Manager[T]) {
		if d > 0 {
			m.lockTimeout = d
		}
	}
}

// WithWriteCheck runs check under the scope lock before every create and
// update, with the other records of the scope. A non-nil error aborts the write.
func WithWriteCheck[T Record[T]](check func(record T, siblings []T) error) Option[T] {
	return func(m *Manager[T]) {
		m.writeCheck = check
	}
}

func WithClock[T Record[T]](now func() time.Time) Option[T] {
	return func(m *Manager[T]) {
		m.now = now
	}
}

// Manager implements the ordered-collection operations for one collection.
type Manager[T Record[T]] struct {
	collection  string
	store       Store[T]
	locks       *scopeLocks
	publisher   eventbus.EventBus
	observer    Observer
	publicCmp   func(a, b T) int
	lockTimeout time.Duration
	writeCheck  func(record T, siblings []T) error
	now         func() time.Time
}

func NewManager[T Record[T]](collection string, store Store[T], opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		collection:  collection,
		store:       store,
		locks:       newScopeLocks(),
		observer:    nopObserver{},
		lockTimeout: defaultLockTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager[T]) Collection() string {
	return m.collection
}

func (m *Manager[T]) checkScope(scope Scope) error {
	if scope.Collection != m.collection {
		return invalid("scope", fmt.Sprintf("collection %q is not managed here", scope.Collection))
	}
	return nil
}

func (m *Manager[T]) guard(a auth.Context, scope Scope) error {
	if !a.Authenticated() {
		return ErrUnauthorized
	}
	return m.checkScope(scope)
}

func (m *Manager[T]) lock(ctx context.Context, scope Scope) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()
	release, err := m.locks.acquire(waitCtx, scope.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConflict, scope, err)
	}
	return release, nil
}

func (m *Manager[T]) publish(event any) {
	if m.publisher != nil {
		m.publisher.Publish(event)
	}
}

func (m *Manager[T]) check(ctx context.Context, scope Scope, record T) error {
	if m.writeCheck == nil {
		return nil
	}
	siblings, err := m.store.ListByScope(ctx, scope, false)
	if err != nil {
		return storeErr("list", err)
	}
	siblings = slices.DeleteFunc(siblings, func(r T) bool { return r.RecordID() == record.RecordID() })
	return m.writeCheck(record, siblings)
}

// storeErr passes domain errors through and wraps everything else as a StoreFailure.
func storeErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConflict) {
		return err
	}
	return &StoreFailureError{Op: op, Err: err}
}

// List returns every record of scope, active or not, ascending by order.
func (m *Manager[T]) List(ctx context.Context, a auth.Context, scope Scope) ([]T, error) {
	if err := m.guard(a, scope); err != nil {
		return nil, err
	}
	records, err := m.store.ListByScope(ctx, scope, false)
	if err != nil {
		return nil, storeErr("list", err)
	}
	return records, nil
}

// ListPublic returns the active records of scope. No authentication is required.
func (m *Manager[T]) ListPublic(ctx context.Context, scope Scope) ([]T, error) {
	if err := m.checkScope(scope); err != nil {
		return nil, err
	}
	records, err := m.store.ListByScope(ctx, scope, true)
	if err != nil {
		return nil, storeErr("list", err)
	}
	records = slices.DeleteFunc(records, func(r T) bool { return !r.RecordActive() })
	if m.publicCmp != nil {
		slices.SortStableFunc(records, m.publicCmp)
	}
	return records, nil
}

func (m *Manager[T]) Get(ctx context.Context, a auth.Context, scope Scope, id uuid.UUID) (T, error) {
	var zero T
	if err := m.guard(a, scope); err != nil {
		return zero, err
	}
	record, err := m.store.GetByID(ctx, scope, id)
	if err != nil {
		return zero, storeErr("get", err)
	}
	return record, nil
}

// GetPublic returns an active record; inactive records are reported as not found.
func (m *Manager[T]) GetPublic(ctx context.Context, scope Scope, id uuid.UUID) (T, error) {
	var zero T
	if err := m.checkScope(scope); err != nil {
		return zero, err
	}
	record, err := m.store.GetByID(ctx, scope, id)
	if err != nil {
		return zero, storeErr("get", err)
	}
	if !record.RecordActive() {
		return zero, ErrNotFound
	}
	return record, nil
}

// Create assigns a fresh id and appends record at max(order)+1, or at
// explicitOrder when the caller supplies one.
func (m *Manager[T]) Create(ctx context.Context, a auth.Context, scope Scope, record T, explicitOrder *int) (T, error) {
	var zero T
	if err := m.guard(a, scope); err != nil {
		return zero, err
	}
	if explicitOrder != nil && *explicitOrder < 0 {
		return zero, invalid("order", "must be non-negative")
	}

	release, err := m.lock(ctx, scope)
	if err != nil {
		return zero, err
	}
	defer release()

	if err := m.check(ctx, scope, record.WithID(uuid.Nil)); err != nil {
		return zero, err
	}

	var order int
	if explicitOrder != nil {
		order = *explicitOrder
	} else {
		maxOrder, err := m.store.MaxOrder(ctx, scope)
		if err != nil {
			m.observer.ObserveWrite(scope, "create", err)
			return zero, storeErr("max order", err)
		}
		order = maxOrder + 1
	}

	record = touch(record.WithID(uuid.New()).WithOrder(order), m.now())
	created, err := m.store.Create(ctx, scope, record)
	m.observer.ObserveWrite(scope, "create", err)
	if err != nil {
		return zero, storeErr("create", err)
	}
	m.publish(&CreatedEvent{Scope: scope, ID: created.RecordID(), Order: created.RecordOrder(), Actor: a.UserID})
	return created, nil
}

// Update applies mutate to the stored record. The stored order is kept unless
// explicitOrder is supplied.
func (m *Manager[T]) Update(
	ctx context.Context,
	a auth.Context,
	scope Scope,
	id uuid.UUID,
	mutate func(T) (T, error),
	explicitOrder *int,
) (T, error) {
	var zero T
	if err := m.guard(a, scope); err != nil {
		return zero, err
	}
	if explicitOrder != nil && *explicitOrder < 0 {
		return zero, invalid("order", "must be non-negative")
	}

	release, err := m.lock(ctx, scope)
	if err != nil {
		return zero, err
	}
	defer release()

	existing, err := m.store.GetByID(ctx, scope, id)
	if err != nil {
		return zero, storeErr("get", err)
	}
	next, err := mutate(existing)
	if err != nil {
		return zero, err
	}

	order := existing.RecordOrder()
	if explicitOrder != nil {
		order = *explicitOrder
	}
	next = touch(next.WithID(existing.RecordID()).WithOrder(order), m.now())
	if err := m.check(ctx, scope, next); err != nil {
		return zero, err
	}

	updated, err := m.store.Update(ctx, scope, next)
	m.observer.ObserveWrite(scope, "update", err)
	if err != nil {
		return zero, storeErr("update", err)
	}
	m.publish(&UpdatedEvent{Scope: scope, ID: id, Actor: a.UserID})
	return updated, nil
}

// Delete removes a record. Siblings keep their order; the gap closes on the next reorder.
func (m *Manager[T]) Delete(ctx context.Context, a auth.Context, scope Scope, id uuid.UUID) error {
	if err := m.guard(a, scope); err != nil {
		return err
	}
	err := m.store.Delete(ctx, scope, id)
	m.observer.ObserveWrite(scope, "delete", err)
	if err != nil {
		return storeErr("delete", err)
	}
	m.publish(&DeletedEvent{Scope: scope, ID: id, Actor: a.UserID})
	return nil
}

// Reorder rewrites the order of every record in scope to its index in orderedIDs.
// orderedIDs must be a permutation of the live ids of scope.
func (m *Manager[T]) Reorder(ctx context.Context, a auth.Context, scope Scope, orderedIDs []uuid.UUID) (err error) {
	if err := m.guard(a, scope); err != nil {
		return err
	}
	start := time.Now()
	defer func() {
		m.observer.ObserveReorder(scope, len(orderedIDs), time.Since(start), err)
	}()
	if len(orderedIDs) == 0 {
		return invalid("orderedIds", "must not be empty")
	}

	release, err := m.lock(ctx, scope)
	if err != nil {
		return err
	}
	defer release()

	current, err := m.store.ListByScope(ctx, scope, false)
	if err != nil {
		return storeErr("list", err)
	}
	if err := ValidatePermutation(IDs(current), orderedIDs); err != nil {
		return err
	}
	if err := m.store.BulkSetOrder(ctx, scope, PositionsOf(orderedIDs)); err != nil {
		return storeErr("bulk set order", err)
	}

	m.publish(&ReorderedEvent{Scope: scope, OrderedIDs: slices.Clone(orderedIDs), Actor: a.UserID})
	return nil
}

// Normalize closes gaps left by deletes, keeping the current relative order.
// It reports how many records were renumbered.
func (m *Manager[T]) Normalize(ctx context.Context, a auth.Context, scope Scope) (int, error) {
	if err := m.guard(a, scope); err != nil {
		return 0, err
	}

	release, err := m.lock(ctx, scope)
	if err != nil {
		return 0, err
	}
	defer release()

	current, err := m.store.ListByScope(ctx, scope, false)
	if err != nil {
		return 0, storeErr("list", err)
	}
	if isContiguous(current) {
		return 0, nil
	}

	changed := 0
	for i, r := range current {
		if r.RecordOrder() != i {
			changed++
		}
	}
	if err := m.store.BulkSetOrder(ctx, scope, PositionsOf(IDs(current))); err != nil {
		return 0, storeErr("bulk set order", err)
	}
	m.publish(&ReorderedEvent{Scope: scope, OrderedIDs: IDs(current), Actor: a.UserID})
	return changed, nil
}
