package cache

import (
	"context"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired items are removed from memory.
const DefaultCleanupInterval = 10 * time.Minute

// Memory implements Cache using github.com/patrickmn/go-cache.
type Memory struct {
	cache *goCache.Cache
}

// NewMemory creates an in-process cache whose entries default to ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{cache: goCache.New(ttl, DefaultCleanupInterval)}
}

// Get retrieves a value from the cache
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set adds a value to the cache. A non-positive ttl uses the default.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = goCache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Close flushes the cache.
func (c *Memory) Close() error {
	c.cache.Flush()
	return nil
}
