// Package client holds the optimistic reorder state machine used by callers of
// the admin API, and an HTTP binding for it.
package client

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/pkg/ordering"
)

type State int

const (
	Idle State = iota
	Dragging
	OptimisticallyReordered
	Confirmed
	Reverted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case OptimisticallyReordered:
		return "optimistically-reordered"
	case Confirmed:
		return "confirmed"
	case Reverted:
		return "reverted"
	default:
		return "unknown"
	}
}

var (
	ErrDragInProgress = errors.New("client: a drag is already in progress")
	ErrNotDragging    = errors.New("client: no drag in progress")
	ErrUnknownRecord  = errors.New("client: record is not in the list")
)

type Identified interface {
	RecordID() uuid.UUID
}

// Fetcher returns the ground-truth list of one scope in order.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Mutator persists a full ordering of the scope.
type Mutator func(ctx context.Context, orderedIDs []uuid.UUID) error

// Notifier shows a failed reorder to the user.
type Notifier func(err error)

type Option[T Identified] func(*List[T])

func WithNotifier[T Identified](notify Notifier) Option[T] {
	return func(l *List[T]) {
		if notify != nil {
			l.notify = notify
		}
	}
}

// List is a reorderable view over one scope. Only one drag exists at a time:
// a new drag is refused until the previous one has been confirmed or reverted.
type List[T Identified] struct {
	fetch  Fetcher[T]
	mutate Mutator
	notify Notifier

	mu       sync.Mutex
	items    []T
	state    State
	dragFrom int
	pending  *Pending
}

func NewList[T Identified](fetch Fetcher[T], mutate Mutator, opts ...Option[T]) *List[T] {
	l := &List[T]{
		fetch:  fetch,
		mutate: mutate,
		notify: func(error) {},
		state:  Idle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *List[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Items returns a copy of the list as currently rendered.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func (l *List[T]) busy() bool {
	return l.state == Dragging || l.pending != nil
}

// Load replaces the list with ground truth and returns to Idle.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.busy() {
		l.mu.Unlock()
		return ErrDragInProgress
	}
	l.mu.Unlock()

	items, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.state = Idle
	return nil
}

func (l *List[T]) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(l.items, func(item T) bool { return item.RecordID() == id })
}

func (l *List[T]) BeginDrag(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy() {
		return ErrDragInProgress
	}
	i := l.indexOf(id)
	if i < 0 {
		return ErrUnknownRecord
	}
	l.dragFrom = i
	l.state = Dragging
	return nil
}

// Cancel abandons the current drag without touching the list.
func (l *List[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Dragging {
		l.state = Idle
	}
}

// Drop moves the dragged record to the index of targetID, renders the result
// immediately and persists it in the background. Dropping a record onto
// itself returns to Idle and yields a nil Pending.
func (l *List[T]) Drop(ctx context.Context, targetID uuid.UUID) (*Pending, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != Dragging {
		return nil, ErrNotDragging
	}
	to := l.indexOf(targetID)
	if to < 0 {
		l.state = Idle
		return nil, ErrUnknownRecord
	}
	if to == l.dragFrom {
		l.state = Idle
		return nil, nil
	}

	l.items = ordering.Move(l.items, l.dragFrom, to)
	l.state = OptimisticallyReordered

	ids := make([]uuid.UUID, len(l.items))
	for i, item := range l.items {
		ids[i] = item.RecordID()
	}
	p := &Pending{done: make(chan struct{})}
	l.pending = p
	go l.confirm(ctx, p, ids)
	return p, nil
}

func (l *List[T]) confirm(ctx context.Context, p *Pending, ids []uuid.UUID) {
	err := l.mutate(ctx, ids)
	if err == nil {
		l.settle(p, Confirmed, nil, nil)
		return
	}

	l.notify(err)
	fresh, fetchErr := l.fetch(ctx)
	if fetchErr != nil {
		// The optimistic copy is still dropped; the list stays empty until the next Load.
		l.settle(p, Reverted, []T{}, errors.Join(err, fetchErr))
		return
	}
	l.settle(p, Reverted, fresh, err)
}

func (l *List[T]) settle(p *Pending, state State, items []T, err error) {
	l.mu.Lock()
	if items != nil {
		l.items = items
	}
	l.state = state
	l.pending = nil
	l.mu.Unlock()

	p.state = state
	p.err = err
	close(p.done)
}

// Pending is the outcome of one drop.
type Pending struct {
	done  chan struct{}
	state State
	err   error
}

// Wait blocks until the reorder is confirmed or reverted. The error is the
// failure that caused the revert.
func (p *Pending) Wait(ctx context.Context) (State, error) {
	select {
	case <-p.done:
		return p.state, p.err
	case <-ctx.Done():
		return OptimisticallyReordered, ctx.Err()
	}
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}
