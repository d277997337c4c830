package store

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/coocood/freecache"

	"github.com/GregMSThompson/steps-backend/internal/errs"
)

// memorySessionStore is the single-instance session backend. Values are lost
// on restart, which only forces users to sign in again.
type memorySessionStore struct {
	cache *freecache.Cache
}

func NewMemorySessionStore(sizeBytes int) *memorySessionStore {
	return &memorySessionStore{cache: freecache.NewCache(sizeBytes)}
}

func (s *memorySessionStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	// freecache treats 0 as "never expires"; round sub-second TTLs up
	seconds := int(math.Ceil(ttl.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	if err := s.cache.Set([]byte(key), []byte(value), seconds); err != nil {
		return errs.NewExternalServiceError("memory_cache", "failed to store session value", false, err)
	}
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, key string) (string, error) {
	val, err := s.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return "", errs.NewNotFoundError("session value not found")
		}
		return "", errs.NewExternalServiceError("memory_cache", "failed to read session value", false, err)
	}
	return string(val), nil
}

func (s *memorySessionStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.cache.Del([]byte(k))
	}
	return nil
}
