package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/matzehuels/qrforge/pkg/errors"
)

// MemoryConfig holds the parameters of an in-process cache.
type MemoryConfig struct {
	// Capacity is the maximum number of entries. Must be greater than 0.
	Capacity int

	// NumShards splits the key space for concurrent access. Must be greater than 0.
	NumShards int

	// TTL bounds the lifetime of every entry. Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is the share of entries dropped when the cache is
	// full. Must be between 1 and 100.
	EvictionPercentage int
}

// DefaultMemoryConfig returns the configuration used by [NewMemoryCache].
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		TTL:                TTLArtifact,
		EvictionPercentage: 10,
	}
}

// Validate checks that every field is in range.
func (c MemoryConfig) Validate() error {
	switch {
	case c.Capacity <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache capacity must be greater than 0")
	case c.NumShards <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache shard count must be greater than 0")
	case c.TTL <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must be greater than 0")
	case c.EvictionPercentage < 1 || c.EvictionPercentage > 100:
		return errors.New(errors.ErrCodeInvalidInput, "cache eviction percentage must be between 1 and 100")
	}
	return nil
}

// MemoryCache is an in-process, concurrency-safe cache backed by sturdyc.
//
// Stored bytes are copied on Set and on Get, so callers may mutate the
// slices they pass in or receive without affecting the cache. The per-call
// ttl passed to Set is ignored; entries live for the configured TTL.
//
// The client runs no background goroutine. Expired entries are hidden on
// read and reclaimed when a full shard evicts on Set, so an abandoned cache
// is garbage collected with its last reference.
type MemoryCache struct {
	client *sturdyc.Client[[]byte]
}

// NewMemoryCache creates a memory cache with [DefaultMemoryConfig].
func NewMemoryCache() *MemoryCache {
	c, _ := NewMemoryCacheWithConfig(DefaultMemoryConfig())
	return c
}

// NewMemoryCacheWithConfig creates a memory cache after validating cfg.
func NewMemoryCacheWithConfig(cfg MemoryConfig) (*MemoryCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		sturdyc.WithNoContinuousEvictions(),
	)
	return &MemoryCache{client: client}, nil
}

// Get retrieves a copy of the value stored under key.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	return clone(data), true, nil
}

// Set stores a copy of data under key.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.client.Set(key, clone(data))
	return nil
}

// Has reports whether key is present.
func (c *MemoryCache) Has(ctx context.Context, key string) (bool, error) {
	_, ok := c.client.Get(key)
	return ok, nil
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.client.Delete(key)
	return nil
}

// Size returns the number of stored entries.
func (c *MemoryCache) Size() int {
	return c.client.Size()
}

// Close does nothing for memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
