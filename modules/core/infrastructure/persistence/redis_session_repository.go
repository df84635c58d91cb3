package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence/models"
)

// RedisSessionRepository keeps one key per session and lets Redis expire it.
type RedisSessionRepository struct {
	redis  *redis.Client
	prefix string
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{redis: client, prefix: "sitecms:sessions:v1"}
}

func (r *RedisSessionRepository) key(token string) string {
	return r.prefix + ":" + token
}

func (r *RedisSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	result, err := r.redis.Get(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}
	var model models.Session
	if err := json.Unmarshal([]byte(result), &model); err != nil {
		return nil, err
	}
	s := ToDomainSession(model)
	if s.IsExpired() {
		return nil, session.ErrSessionNotFound
	}
	return s, nil
}

func (r *RedisSessionRepository) Create(ctx context.Context, s *session.Session) error {
	payload, err := json.Marshal(ToDBSession(s))
	if err != nil {
		return err
	}
	ttl := s.TTL()
	if ttl == 0 {
		return nil
	}
	return r.redis.Set(ctx, r.key(s.Token), payload, ttl).Err()
}

func (r *RedisSessionRepository) Delete(ctx context.Context, token string) error {
	return r.redis.Del(ctx, r.key(token)).Err()
}
