package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ordering.ErrUnauthorized)

type AuthService struct {
	usersService    *UserService
	sessionService  *SessionService
	sessionDuration time.Duration
}

func NewAuthService(users *UserService, sessions *SessionService, sessionDuration time.Duration) *AuthService {
	if sessionDuration <= 0 {
		sessionDuration = 24 * time.Hour
	}
	return &AuthService{
		usersService:    users,
		sessionService:  sessions,
		sessionDuration: sessionDuration,
	}
}

func (s *AuthService) newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *AuthService) authenticate(ctx context.Context, u user.User) (*session.Session, error) {
	logger := composables.UseLogger(ctx)

	ip, ok := composables.UseIP(ctx)
	if !ok {
		ip = "0.0.0.0"
	}
	userAgent, ok := composables.UseUserAgent(ctx)
	if !ok {
		userAgent = "Unknown"
	}

	token, err := s.newSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sess := &session.Session{
		Token:     token,
		UserID:    u.ID(),
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: now.Add(s.sessionDuration),
		CreatedAt: now,
	}

	if _, err := s.usersService.UpdateLastLogin(ctx, u); err != nil {
		return nil, err
	}
	if err := s.sessionService.Create(ctx, sess); err != nil {
		return nil, err
	}
	logger.WithField("user-id", u.ID()).Info("session created")
	return sess, nil
}

// Authenticate checks credentials and opens a session. Unknown emails and
// wrong passwords produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (user.User, *session.Session, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	u, err := s.usersService.GetByEmail(ctx, addr)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !u.CheckPassword(password) {
		composables.UseLogger(ctx).WithField("email", addr).Warn("invalid password")
		return nil, nil, ErrInvalidCredentials
	}
	sess, err := s.authenticate(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

func (s *AuthService) CookieAuthenticate(ctx context.Context, email, password string) (*http.Cookie, *session.Session, error) {
	_, sess, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	return SessionCookie(sess.Token, sess.ExpiresAt), sess, nil
}

// Authorize resolves a session token into the caller's auth context.
func (s *AuthService) Authorize(ctx context.Context, token string) (auth.Context, error) {
	sess, err := s.sessionService.GetByToken(ctx, token)
	if errors.Is(err, session.ErrSessionNotFound) {
		return auth.Anonymous(), ordering.ErrUnauthorized
	}
	if err != nil {
		return auth.Anonymous(), err
	}
	if sess.IsExpired() {
		return auth.Anonymous(), ordering.ErrUnauthorized
	}
	u, err := s.usersService.GetByID(ctx, sess.UserID)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.Anonymous(), ordering.ErrUnauthorized
	}
	if err != nil {
		return auth.Anonymous(), err
	}
	return auth.Context{
		UserID:       u.ID(),
		Email:        u.Email().String(),
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionService.Delete(ctx, token)
}

// SessionCookie builds the sid cookie; an expiry in the past clears it.
func SessionCookie(token string, expires time.Time) *http.Cookie {
	conf := configuration.Use()
	domain := ""
	if conf.GoAppEnvironment == configuration.Production {
		domain = conf.Domain
	}
	return &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == configuration.Production,
		Domain:   domain,
		Path:     "/",
	}
}
