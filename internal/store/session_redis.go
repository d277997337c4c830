package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/GregMSThompson/steps-backend/internal/errs"
)

const sessionKeyPrefix = "fitsession:"

// redisSessionStore keeps per-session values in Redis with a TTL so
// abandoned sessions are evicted by the server.
type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *redisSessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+key, value, ttl).Err(); err != nil {
		return errs.NewExternalServiceError("redis", "failed to store session value", true, err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errs.NewNotFoundError("session value not found")
		}
		return "", errs.NewExternalServiceError("redis", "failed to read session value", true, err)
	}
	return val, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, sessionKeyPrefix+k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return errs.NewExternalServiceError("redis", "failed to delete session values", true, err)
	}
	return nil
}
