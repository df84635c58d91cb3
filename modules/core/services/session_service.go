package services

import (
	"context"

	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/pkg/eventbus"
)

type SessionCreatedEvent struct {
	Session *session.Session
}

type SessionDeletedEvent struct {
	Token string
}

type SessionService struct {
	repo      session.Repository
	publisher eventbus.EventBus
}

func NewSessionService(repo session.Repository, publisher eventbus.EventBus) *SessionService {
	return &SessionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *SessionService) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	return s.repo.GetByToken(ctx, token)
}

func (s *SessionService) Create(ctx context.Context, sess *session.Session) error {
	if err := s.repo.Create(ctx, sess); err != nil {
		return err
	}
	s.publisher.Publish(&SessionCreatedEvent{Session: sess})
	return nil
}

func (s *SessionService) Delete(ctx context.Context, token string) error {
	if err := s.repo.Delete(ctx, token); err != nil {
		return err
	}
	s.publisher.Publish(&SessionDeletedEvent{Token: token})
	return nil
}

// Purger is implemented by session repositories that need explicit cleanup.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// PurgeExpired drops expired sessions. Stores that expire keys on their own report zero.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	p, ok := s.repo.(Purger)
	if !ok {
		return 0, nil
	}
	return p.Purge(ctx)
}
