package persistence

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
)

type SafeMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{
		m: make(map[K]V),
	}
}

func (s *SafeMap[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *SafeMap[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, found := s.m[key]
	return val, found
}

func (s *SafeMap[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}

func (s *SafeMap[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *SafeMap[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(maps.Values(s.m))
}

type InmemUserRepository struct {
	storage *SafeMap[uuid.UUID, user.User]
}

func NewInmemUserRepository() *InmemUserRepository {
	return &InmemUserRepository{storage: NewSafeMap[uuid.UUID, user.User]()}
}

func (r *InmemUserRepository) Count(context.Context) (int64, error) {
	return int64(r.storage.Len()), nil
}

func (r *InmemUserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, found := r.storage.Get(id)
	if !found {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *InmemUserRepository) GetByEmail(_ context.Context, email user.Email) (user.User, error) {
	for _, u := range r.storage.Values() {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *InmemUserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.storage.Set(u.ID(), u)
	return u, nil
}

func (r *InmemUserRepository) Update(_ context.Context, u user.User) (user.User, error) {
	if _, found := r.storage.Get(u.ID()); !found {
		return nil, user.ErrUserNotFound
	}
	r.storage.Set(u.ID(), u)
	return u, nil
}

type InmemSessionRepository struct {
	storage *SafeMap[string, session.Session]
}

func NewInmemSessionRepository() *InmemSessionRepository {
	return &InmemSessionRepository{storage: NewSafeMap[string, session.Session]()}
}

func (r *InmemSessionRepository) GetByToken(_ context.Context, token string) (*session.Session, error) {
	s, found := r.storage.Get(token)
	if !found || s.IsExpired() {
		return nil, session.ErrSessionNotFound
	}
	return &s, nil
}

func (r *InmemSessionRepository) Create(_ context.Context, s *session.Session) error {
	r.storage.Set(s.Token, *s)
	return nil
}

func (r *InmemSessionRepository) Delete(_ context.Context, token string) error {
	r.storage.Delete(token)
	return nil
}
