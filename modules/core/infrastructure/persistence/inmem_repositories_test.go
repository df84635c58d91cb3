package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence"
)

func TestInmemUserRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemUserRepository()

	u, err := repo.Create(ctx, user.New("editor@example.com"))
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByEmail(ctx, "editor@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.Update(ctx, user.New("ghost@example.com"))
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestInmemSessionRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemSessionRepository()

	live := &session.Session{Token: "live", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
	stale := &session.Session{Token: "stale", UserID: uuid.New(), ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.GetByToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live.UserID, got.UserID)

	_, err = repo.GetByToken(ctx, "stale")
	require.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, repo.Delete(ctx, "live"))
	_, err = repo.GetByToken(ctx, "live")
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestMappers_UserRoundTrip(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	u := user.New("editor@example.com", user.WithPasswordHash("hash"), user.WithLastLogin(at))

	m := persistence.ToDBUser(u)
	require.NotNil(t, m.LastLogin)
	back := persistence.ToDomainUser(m)
	assert.Equal(t, u.ID(), back.ID())
	assert.Equal(t, "hash", back.PasswordHash())
	assert.Equal(t, at, back.LastLogin())

	assert.Nil(t, persistence.ToDBUser(user.New("new@example.com")).LastLogin)
}
