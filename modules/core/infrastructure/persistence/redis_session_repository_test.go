package persistence_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence"
)

func TestRedisSessionRepository(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	repo := persistence.NewRedisSessionRepository(client)
	token := uuid.NewString()
	s := &session.Session{Token: token, UserID: uuid.New(), IP: "10.0.0.1", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, "10.0.0.1", got.IP)

	require.NoError(t, repo.Delete(ctx, token))
	_, err = repo.GetByToken(ctx, token)
	require.ErrorIs(t, err, session.ErrSessionNotFound)
}
