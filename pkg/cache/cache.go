// Package cache stores compiled artifacts keyed by the content they were
// built from.
//
// Three backends are provided:
//   - [NullCache]: never stores anything
//   - [FileCache]: JSON entries under a local directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP service
//
// Keys are produced by [ArtifactKey] from the engine, its arguments, the
// LaTeX source and digests of the files the source reads, so an entry is
// reused only when all of them are unchanged.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
