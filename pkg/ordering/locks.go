package ordering

import (
	"context"
	"sync"
)

// scopeLocks is a set of context-aware mutexes keyed by scope.
type scopeLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newScopeLocks() *scopeLocks {
	return &scopeLocks{locks: make(map[string]chan struct{})}
}

func (l *scopeLocks) acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
