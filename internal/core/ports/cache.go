package ports

import "go.trai.ch/scout/internal/core/domain"

// Cache stores provider responses on disk keyed by request parameters.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type Cache interface {
	// Get decodes the cached payload for the key into dst.
	// It reports false on a miss, including expired and corrupt entries.
	Get(cacheType domain.CacheType, parts domain.KeyParts, dst any) (bool, error)

	// Put serializes data and stores it under the key.
	Put(cacheType domain.CacheType, parts domain.KeyParts, data any) error

	// Invalidate removes the entry for the key. It reports whether an entry existed.
	Invalidate(cacheType domain.CacheType, parts domain.KeyParts) (bool, error)

	// Clear removes every entry of cacheType, or every entry when cacheType is empty.
	Clear(cacheType domain.CacheType) (int, error)

	// Stats summarizes the cache contents.
	Stats() (domain.CacheStats, error)
}
