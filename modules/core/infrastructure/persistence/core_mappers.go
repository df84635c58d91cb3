package persistence

import (
	"time"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence/models"
)

func ToDomainUser(m models.User) user.User {
	opts := []user.Option{
		user.WithID(m.ID),
		user.WithPasswordHash(m.Password),
		user.WithCreatedAt(m.CreatedAt),
		user.WithUpdatedAt(m.UpdatedAt),
	}
	if m.LastLogin != nil {
		opts = append(opts, user.WithLastLogin(*m.LastLogin))
	}
	return user.New(user.Email(m.Email), opts...)
}

func ToDBUser(u user.User) models.User {
	var lastLogin *time.Time
	if t := u.LastLogin(); !t.IsZero() {
		lastLogin = &t
	}
	return models.User{
		ID:        u.ID(),
		Email:     u.Email().String(),
		Password:  u.PasswordHash(),
		LastLogin: lastLogin,
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func ToDomainSession(m models.Session) *session.Session {
	return &session.Session{
		Token:     m.Token,
		UserID:    m.UserID,
		IP:        m.IP,
		UserAgent: m.UserAgent,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

func ToDBSession(s *session.Session) models.Session {
	return models.Session{
		Token:     s.Token,
		UserID:    s.UserID,
		IP:        s.IP,
		UserAgent: s.UserAgent,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}
