// Package session stores short-lived per-visitor state (carts, wishlists,
// idempotency keys) under string keys with a time-to-live.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrConflict is returned when an update kept losing races with other writers.
var ErrConflict = errors.New("session: concurrent update conflict")

// Store is a TTL key/value store. Get returns domain.ErrNotFound for missing
// or expired keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Update applies fn to the current value (nil when absent) and stores the
	// result atomically with respect to other writers of key. An error from fn
	// aborts the update and is returned unchanged.
	Update(ctx context.Context, key string, ttl time.Duration, fn func(current []byte) ([]byte, error)) error
	// Touch resets the ttl of an existing key; missing keys are ignored.
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Ping(ctx context.Context) error
}
