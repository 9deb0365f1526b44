// Package cache defines the verification-result cache collaborator and
// the implementations the SDK ships: in-memory, Redis, and Postgres.
package cache

import (
	"context"
	"time"
)

// Cache stores verification results keyed by an opaque string. A zero or
// negative TTL means the entry does not expire.
type Cache interface {
	// Get returns the cached value and whether the key was present and
	// unexpired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a value under the key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
