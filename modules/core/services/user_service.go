package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/pkg/eventbus"
)

type UserCreatedEvent struct {
	UserID uuid.UUID
	Email  user.Email
}

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) GetByEmail(ctx context.Context, email user.Email) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *UserService) Create(ctx context.Context, email, password string) (user.User, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := user.New(addr).SetPassword(password)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(&UserCreatedEvent{UserID: created.ID(), Email: created.Email()})
	return created, nil
}

// EnsureUser creates the user unless one with the same email exists. The
// password of an existing user is left untouched.
func (s *UserService) EnsureUser(ctx context.Context, email, password string) (user.User, bool, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.repo.GetByEmail(ctx, addr)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, false, err
	}
	created, err := s.Create(ctx, email, password)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *UserService) UpdateLastLogin(ctx context.Context, u user.User) (user.User, error) {
	return s.repo.Update(ctx, u.SetLastLogin(time.Now()))
}
