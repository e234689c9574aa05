// Package cache implements a durable on-disk response cache with TTL expiry
// and size-bounded LRU eviction.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.trai.ch/scout/internal/adapters/atomicfs"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Config configures a Cache.
type Config struct {
	Dir          string
	Enabled      bool
	DiscoveryTTL time.Duration
	ResearchTTL  time.Duration
	// MaxSizeBytes bounds the total payload size. Zero or less disables eviction.
	MaxSizeBytes int64
}

// Cache implements ports.Cache. The index is loaded once and kept resident;
// every mutation is written through to disk under mu.
type Cache struct {
	cfg     Config
	logger  ports.Logger
	store   *atomicfs.Store
	metrics ports.MetricsRecorder
	now     func() time.Time

	mu             sync.Mutex
	index          map[string]*domain.CacheEntry
	orphansCleaned int
}

var _ ports.Cache = (*Cache)(nil)

// New opens the cache at cfg.Dir, recovering the index and removing orphaned
// files. A disabled cache never touches the disk.
func New(cfg Config, log ports.Logger, opts ...Option) (*Cache, error) {
	c := &Cache{
		cfg:    cfg,
		logger: log,
		store:  atomicfs.New(log),
		now:    time.Now,
		index:  make(map[string]*domain.CacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !cfg.Enabled {
		return c, nil
	}

	if err := os.MkdirAll(cfg.Dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", cfg.Dir)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = c.loadIndex()
	c.orphansCleaned = c.cleanupOrphans()
	if c.orphansCleaned > 0 {
		c.logger.Info(fmt.Sprintf("removed %d orphaned cache files", c.orphansCleaned))
	}
	c.reportSize()

	return c, nil
}

// Get decodes the cached payload for the key into dst.
func (c *Cache) Get(cacheType domain.CacheType, parts domain.KeyParts, dst any) (bool, error) {
	if !c.cfg.Enabled {
		return false, nil
	}

	key := Key(cacheType, parts)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index[key]
	if !ok {
		c.lookup(cacheType, domain.LookupMiss)
		return false, nil
	}

	now := c.now()
	if entry.Expired(now) {
		c.removeEntry(key, entry)
		c.persistQuietly()
		c.lookup(cacheType, domain.LookupExpired)
		return false, nil
	}

	//nolint:gosec // path is built from the cache dir and a hex key
	data, err := os.ReadFile(c.path(entry.FilePath))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, zerr.With(domain.NewCacheIOError("read", "failed to read cache entry").WithCause(err),
				"key", key)
		}
		delete(c.index, key)
		c.persistQuietly()
		c.lookup(cacheType, domain.LookupMiss)
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn(zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "key", key).Error())
		c.removeEntry(key, entry)
		c.persistQuietly()
		c.lookup(cacheType, domain.LookupCorrupt)
		return false, nil
	}

	entry.LastAccessed = now
	c.persistQuietly()
	c.lookup(cacheType, domain.LookupHit)
	return true, nil
}

// Put serializes data and stores it under the key, evicting least recently
// used entries first when the size budget would be exceeded.
func (c *Cache) Put(cacheType domain.CacheType, parts domain.KeyParts, data any) error {
	if !c.cfg.Enabled {
		return nil
	}
	if !cacheType.Valid() {
		return domain.NewValidationError("cache_type", fmt.Sprintf("unknown cache type '%s'", cacheType))
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	key := Key(cacheType, parts)
	name := fileName(cacheType, key)
	path := c.path(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.WriteDurable(path, payload, domain.FilePerm); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheStatFailed.Error()), "path", path)
	}

	// The previous entry for this key points at the file just replaced, so it
	// must not be counted or evicted.
	delete(c.index, key)
	c.enforceSizeLimit(info.Size())

	now := c.now()
	c.index[key] = &domain.CacheEntry{
		KeyHash:      key,
		FilePath:     name,
		CreatedAt:    now,
		TTLSeconds:   ttlSeconds(c.ttl(cacheType)),
		CacheType:    cacheType,
		KeyParts:     parts,
		SizeBytes:    info.Size(),
		LastAccessed: now,
	}

	if err := c.persistIndex(); err != nil {
		return err
	}

	if c.metrics != nil {
		c.metrics.CacheStored(cacheType, info.Size())
	}
	c.reportSize()
	return nil
}

// Invalidate removes the entry for the key. It is idempotent.
func (c *Cache) Invalidate(cacheType domain.CacheType, parts domain.KeyParts) (bool, error) {
	if !c.cfg.Enabled {
		return false, nil
	}

	key := Key(cacheType, parts)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index[key]
	if !ok {
		return false, nil
	}
	c.removeEntry(key, entry)
	if err := c.persistIndex(); err != nil {
		return true, err
	}
	c.reportSize()
	return true, nil
}

// Clear removes every entry of cacheType, or all entries when cacheType is
// empty, and returns how many were removed.
func (c *Cache) Clear(cacheType domain.CacheType) (int, error) {
	if !c.cfg.Enabled {
		return 0, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs *multierror.Error
	count := 0
	for key, entry := range c.index {
		if cacheType != "" && entry.CacheType != cacheType {
			continue
		}
		if err := os.Remove(c.path(entry.FilePath)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = multierror.Append(errs, err)
		}
		delete(c.index, key)
		count++
	}

	if err := c.persistIndex(); err != nil {
		errs = multierror.Append(errs, err)
	}
	c.reportSize()
	return count, errs.ErrorOrNil()
}

// Stats summarizes the cache contents.
func (c *Cache) Stats() (domain.CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := domain.CacheStats{
		Enabled:                   c.cfg.Enabled,
		MaxSizeBytes:              c.cfg.MaxSizeBytes,
		OrphansCleanedLastStartup: c.orphansCleaned,
	}

	now := c.now()
	for _, entry := range c.index {
		stats.TotalEntries++
		stats.TotalSizeBytes += entry.SizeBytes
		switch entry.CacheType {
		case domain.CacheDiscovery:
			stats.DiscoveryCount++
		case domain.CacheResearch:
			stats.ResearchCount++
		}
		if entry.Expired(now) {
			stats.ExpiredCount++
		}

		created := entry.CreatedAt
		if stats.OldestTimestamp == nil || created.Before(*stats.OldestTimestamp) {
			stats.OldestTimestamp = &created
		}
		if stats.NewestTimestamp == nil || created.After(*stats.NewestTimestamp) {
			stats.NewestTimestamp = &created
		}
	}
	return stats, nil
}

func (c *Cache) ttl(cacheType domain.CacheType) time.Duration {
	if cacheType == domain.CacheDiscovery {
		return c.cfg.DiscoveryTTL
	}
	return c.cfg.ResearchTTL
}

// ttlSeconds rounds up so that a sub-second TTL does not expire on write.
func ttlSeconds(ttl time.Duration) int64 {
	return int64((ttl + time.Second - 1) / time.Second)
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.cfg.Dir, name)
}

// removeEntry deletes the entry and its data file. Callers hold mu.
func (c *Cache) removeEntry(key string, entry *domain.CacheEntry) {
	if err := os.Remove(c.path(entry.FilePath)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn(fmt.Sprintf("failed to remove cache file %s: %v", entry.FilePath, err))
	}
	delete(c.index, key)
}

func (c *Cache) lookup(cacheType domain.CacheType, outcome string) {
	if c.metrics != nil {
		c.metrics.CacheLookup(cacheType, outcome)
	}
}

func (c *Cache) reportSize() {
	if c.metrics == nil {
		return
	}
	var total int64
	for _, entry := range c.index {
		total += entry.SizeBytes
	}
	c.metrics.CacheSize(total)
}
