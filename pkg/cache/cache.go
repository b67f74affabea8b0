// Package cache provides content-addressed storage for rendered QR outputs.
//
// A [Cache] is a plain byte store keyed by opaque strings. Keys are produced
// by a [Keyer] from every request field that can change the output bytes plus
// a render-path tag, so that an SVG, a PNG and a JPEG at two different
// qualities of the same request occupy independent entries.
//
// # Implementations
//
//   - [MemoryCache]: sharded in-process store (sturdyc); the default
//   - [NullCache]: never stores anything
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared store backed by Redis
//
// Stores replace values atomically per key; concurrent writers of the same key
// leave either the old or the new value, never a mixture. Because every key is
// a content hash, two writers of one key always write equivalent bytes.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for rendered artifacts.
type Cache interface {
	// Get returns the stored bytes and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means the store's default.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Has reports whether key is present without returning the value.
	Has(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// TTLArtifact is how long rendered artifacts are kept by stores that honour
// per-entry expiry. Renders are pure functions of their key, so entries never
// go stale; the TTL only bounds storage.
const TTLArtifact = 7 * 24 * time.Hour
