package providers

import (
	"context"
)

// CacheProvider is the cache abstraction behind the availability projection
// and the profile read-through cache. Backed by Redis in production; tests
// substitute an in-process map.
type CacheProvider interface {
	// Get retrieves a cached value; implementations return an error on miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL in seconds
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a key, a no-op when absent
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present
	Exists(ctx context.Context, key string) (bool, error)
}
