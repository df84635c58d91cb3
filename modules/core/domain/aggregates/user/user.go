package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

type Option func(u *user)

func WithID(id uuid.UUID) Option {
	return func(u *user) {
		u.id = id
	}
}

func WithPasswordHash(hash string) Option {
	return func(u *user) {
		u.passwordHash = hash
	}
}

func WithLastLogin(t time.Time) Option {
	return func(u *user) {
		u.lastLogin = t
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(u *user) {
		u.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(u *user) {
		u.updatedAt = t
	}
}

// User is an editor allowed to use the admin API.
type User interface {
	ID() uuid.UUID
	Email() Email
	PasswordHash() string
	LastLogin() time.Time
	CreatedAt() time.Time
	UpdatedAt() time.Time

	CheckPassword(password string) bool
	SetPassword(password string) (User, error)
	SetLastLogin(t time.Time) User
}

func New(email Email, opts ...Option) User {
	now := time.Now()
	u := &user{
		id:        uuid.New(),
		email:     email,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type user struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	lastLogin    time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func (u *user) ID() uuid.UUID {
	return u.id
}

func (u *user) Email() Email {
	return u.email
}

func (u *user) PasswordHash() string {
	return u.passwordHash
}

func (u *user) LastLogin() time.Time {
	return u.lastLogin
}

func (u *user) CreatedAt() time.Time {
	return u.createdAt
}

func (u *user) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *user) CheckPassword(password string) bool {
	if u.passwordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *user) SetPassword(password string) (User, error) {
	if len(password) < 8 {
		return nil, ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	result := *u
	result.passwordHash = string(hash)
	result.updatedAt = time.Now()
	return &result, nil
}

func (u *user) SetLastLogin(t time.Time) User {
	result := *u
	result.lastLogin = t
	return &result
}
