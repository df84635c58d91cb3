package client_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/pkg/ordering/client"
)

type card struct {
	ID   uuid.UUID
	Name string
}

func (c card) RecordID() uuid.UUID { return c.ID }

// backend is an in-memory stand-in for the admin API.
type backend struct {
	mu      sync.Mutex
	items   []card
	fail    error
	gate    chan struct{}
	fetches atomic.Int32
	writes  atomic.Int32
}

func newBackend(names ...string) *backend {
	b := &backend{}
	for _, n := range names {
		b.items = append(b.items, card{ID: uuid.New(), Name: n})
	}
	return b
}

func (b *backend) fetch(context.Context) ([]card, error) {
	b.fetches.Add(1)
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]card(nil), b.items...), nil
}

func (b *backend) reorder(_ context.Context, ids []uuid.UUID) error {
	b.writes.Add(1)
	if b.gate != nil {
		<-b.gate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	byID := make(map[uuid.UUID]card, len(b.items))
	for _, c := range b.items {
		byID[c.ID] = c
	}
	next := make([]card, len(ids))
	for i, id := range ids {
		next[i] = byID[id]
	}
	b.items = next
	return nil
}

func (b *backend) id(name string) uuid.UUID {
	for _, c := range b.items {
		if c.Name == name {
			return c.ID
		}
	}
	return uuid.Nil
}

func names(items []card) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name
	}
	return out
}

func loaded(t *testing.T, b *backend, opts ...client.Option[card]) *client.List[card] {
	t.Helper()
	l := client.NewList(b.fetch, b.reorder, opts...)
	require.NoError(t, l.Load(context.Background()))
	require.Equal(t, client.Idle, l.State())
	return l
}

func TestList_DropConfirms(t *testing.T) {
	t.Parallel()
	b := newBackend("A", "B", "C")
	l := loaded(t, b)

	require.NoError(t, l.BeginDrag(b.id("C")))
	assert.Equal(t, client.Dragging, l.State())

	p, err := l.Drop(context.Background(), b.id("A"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"C", "A", "B"}, names(l.Items()))

	state, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.Confirmed, state)
	assert.Equal(t, client.Confirmed, l.State())
	assert.Equal(t, []string{"C", "A", "B"}, names(l.Items()))
	assert.Equal(t, int32(1), b.fetches.Load(), "no re-fetch after success")
}

func TestList_OptimisticBeforeConfirmation(t *testing.T) {
	t.Parallel()
	b := newBackend("A", "B", "C")
	b.gate = make(chan struct{})
	l := loaded(t, b)

	require.NoError(t, l.BeginDrag(b.id("A")))
	p, err := l.Drop(context.Background(), b.id("C"))
	require.NoError(t, err)

	assert.Equal(t, client.OptimisticallyReordered, l.State())
	assert.Equal(t, []string{"B", "C", "A"}, names(l.Items()))
	require.ErrorIs(t, l.BeginDrag(b.id("B")), client.ErrDragInProgress)
	require.ErrorIs(t, l.Load(context.Background()), client.ErrDragInProgress)

	close(b.gate)
	state, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.Confirmed, state)
	require.NoError(t, l.BeginDrag(b.id("B")))
}

func TestList_FailureReverts(t *testing.T) {
	t.Parallel()
	b := newBackend("A", "B", "C")
	storeDown := errors.New("connection reset")
	b.fail = storeDown

	var notified []error
	var mu sync.Mutex
	l := loaded(t, b, client.WithNotifier[card](func(err error) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, err)
	}))

	require.NoError(t, l.BeginDrag(b.id("C")))
	p, err := l.Drop(context.Background(), b.id("A"))
	require.NoError(t, err)

	state, err := p.Wait(context.Background())
	require.ErrorIs(t, err, storeDown)
	assert.Equal(t, client.Reverted, state)
	assert.Equal(t, client.Reverted, l.State())
	assert.Equal(t, []string{"A", "B", "C"}, names(l.Items()), "ground truth restored")
	assert.Equal(t, int32(2), b.fetches.Load())
	assert.Equal(t, int32(1), b.writes.Load(), "no automatic retry")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, notified, 1)
	assert.ErrorIs(t, notified[0], storeDown)
}

func TestList_DropOnSelfIsNoop(t *testing.T) {
	t.Parallel()
	b := newBackend("A", "B")
	l := loaded(t, b)

	require.NoError(t, l.BeginDrag(b.id("B")))
	p, err := l.Drop(context.Background(), b.id("B"))
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, client.Idle, l.State())
	assert.Equal(t, int32(0), b.writes.Load())
}

func TestList_GestureErrors(t *testing.T) {
	t.Parallel()
	b := newBackend("A", "B")
	l := loaded(t, b)

	_, err := l.Drop(context.Background(), b.id("A"))
	require.ErrorIs(t, err, client.ErrNotDragging)

	require.ErrorIs(t, l.BeginDrag(uuid.New()), client.ErrUnknownRecord)

	require.NoError(t, l.BeginDrag(b.id("A")))
	require.ErrorIs(t, l.BeginDrag(b.id("B")), client.ErrDragInProgress)

	_, err = l.Drop(context.Background(), uuid.New())
	require.ErrorIs(t, err, client.ErrUnknownRecord)
	assert.Equal(t, client.Idle, l.State())

	require.NoError(t, l.BeginDrag(b.id("A")))
	l.Cancel()
	assert.Equal(t, client.Idle, l.State())
}

func TestState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "optimistically-reordered", client.OptimisticallyReordered.String())
	assert.Equal(t, "unknown", client.State(42).String())
}
