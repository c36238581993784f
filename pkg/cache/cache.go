// Package cache provides a byte-oriented cache used by the CLI to reuse
// serialized analyses across runs.
//
// Keys are opaque strings; [ForestKey] derives a stable key from the
// input forest bytes and the analysis configuration, so any change to
// either invalidates the entry. [FileCache] stores entries on disk with
// optional expiry; [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves byte values by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
