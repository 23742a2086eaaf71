// Package cache memoizes license resolution outcomes for one run.
//
// Entries live for the lifetime of the [Cache] value: there is no TTL, no
// eviction and no persistence. Negative outcomes are stored too, so a URL
// that failed once is not fetched again in the same run.
//
// # Key Types
//
// Keys are grouped by type for observability only; all types share a single
// keyspace. [KeyTypeRepository] keys come from [RepositoryKey],
// [KeyTypeURL] keys are the license or project URL string itself. A license
// URL and a project URL that happen to be identical therefore share an entry.
//
// # Usage
//
//	c := cache.NewMemoryCache()
//	text, ok := c.GetOrCreate(ctx, cache.KeyTypeURL, licenseURL, func(ctx context.Context) (string, bool) {
//	    return resolveFromURL(ctx, licenseURL)
//	})
package cache

import "context"

// Key types reported to observability hooks.
const (
	KeyTypeRepository = "repository"
	KeyTypeURL        = "url"
)

// CreateFunc computes an outcome on a cache miss.
type CreateFunc func(ctx context.Context) (string, bool)

// Cache is an at-most-once get-or-create store for resolution outcomes.
// Implementations must be safe for concurrent use.
type Cache interface {
	// GetOrCreate returns the stored outcome for key, or runs create, stores
	// its outcome and returns it. Concurrent callers for the same key share
	// one create call.
	GetOrCreate(ctx context.Context, keyType, key string, create CreateFunc) (string, bool)

	// Len returns the number of stored outcomes.
	Len() int

	// Close releases resources held by the cache.
	Close() error
}

// RepositoryKey returns the key for a repository URL pinned at a commit.
func RepositoryKey(repoURL, commit string) string {
	return repoURL + "/" + commit
}
