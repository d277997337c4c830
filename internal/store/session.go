package store

import (
	"context"
	"time"
)

// SessionStore keeps short-lived sealed tokens. Get reports a missing or
// expired key as *errs.NotFoundError.
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}
