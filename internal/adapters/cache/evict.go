package cache

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/scout/internal/core/domain"
)

// enforceSizeLimit evicts least recently accessed entries until incoming more
// bytes fit within the budget. Callers hold mu and persist the index afterwards.
func (c *Cache) enforceSizeLimit(incoming int64) {
	if c.cfg.MaxSizeBytes <= 0 {
		return
	}

	var total int64
	for _, entry := range c.index {
		total += entry.SizeBytes
	}
	if total+incoming <= c.cfg.MaxSizeBytes {
		return
	}

	entries := make([]*domain.CacheEntry, 0, len(c.index))
	for _, entry := range c.index {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b *domain.CacheEntry) int {
		if n := a.LastAccessed.Compare(b.LastAccessed); n != 0 {
			return n
		}
		return strings.Compare(a.KeyHash, b.KeyHash)
	})

	evicted := 0
	for _, entry := range entries {
		if total+incoming <= c.cfg.MaxSizeBytes {
			break
		}
		c.removeEntry(entry.KeyHash, entry)
		total -= entry.SizeBytes
		evicted++
		if c.metrics != nil {
			c.metrics.CacheEvicted(entry.CacheType)
		}
	}
	if evicted > 0 {
		c.logger.Info(fmt.Sprintf("evicted %d cache entries to stay within %d bytes", evicted, c.cfg.MaxSizeBytes))
	}
}
