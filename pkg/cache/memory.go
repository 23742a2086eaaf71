package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/noticegen/pkg/observability"
)

type outcome struct {
	text  string
	found bool
}

// MemoryCache keeps outcomes in a map. A singleflight group acts as the
// in-flight marker so concurrent misses on one key run create once.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]outcome
	group   singleflight.Group
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]outcome)}
}

// GetOrCreate implements [Cache].
func (c *MemoryCache) GetOrCreate(ctx context.Context, keyType, key string, create CreateFunc) (string, bool) {
	hooks := observability.Cache()
	if o, ok := c.lookup(key); ok {
		hooks.OnCacheHit(ctx, keyType)
		return o.text, o.found
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have stored the key between lookup and Do.
		if o, ok := c.lookup(key); ok {
			hooks.OnCacheHit(ctx, keyType)
			return o, nil
		}
		hooks.OnCacheMiss(ctx, keyType)

		text, found := create(ctx)
		o := outcome{text: text, found: found}
		// An outcome cut short by cancellation says nothing about the key.
		if ctx.Err() == nil {
			c.mu.Lock()
			c.entries[key] = o
			c.mu.Unlock()
			hooks.OnCacheSet(ctx, keyType, found)
		}
		return o, nil
	})
	o := v.(outcome)
	return o.text, o.found
}

func (c *MemoryCache) lookup(key string) (outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.entries[key]
	return o, ok
}

// Len implements [Cache].
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]outcome)
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
