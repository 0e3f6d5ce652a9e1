// AngelaMos | 2026
// session_redis.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(
	ctx context.Context,
	key string,
	userID uuid.UUID,
	ttl time.Duration,
) error {
	err := s.client.Set(ctx, sessionKeyPrefix+key, userID.String(), ttl).Err()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(
	ctx context.Context,
	key string,
) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, fmt.Errorf("get session: %w", core.ErrNotFound)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get session: corrupt value: %w", err)
	}

	return userID, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, sessionKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete session: %w", core.ErrNotFound)
	}
	return nil
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session store ping failed: %w", err)
	}
	return nil
}
