package cache

import "context"

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when memoization should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// GetOrCreate always runs create.
func (c *NullCache) GetOrCreate(ctx context.Context, keyType, key string, create CreateFunc) (string, bool) {
	return create(ctx)
}

// Len always returns zero.
func (c *NullCache) Len() int {
	return 0
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
