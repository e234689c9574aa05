package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/zerr"
)

type indexFile map[string]*domain.CacheEntry

func (c *Cache) indexPath() string {
	return c.path(domain.IndexFileName)
}

func (c *Cache) backupPath() string {
	return c.path(domain.IndexBackupName())
}

// loadIndex reads the primary index, falling back to the backup and then to
// an empty index. A usable backup is copied over the primary.
func (c *Cache) loadIndex() map[string]*domain.CacheEntry {
	index, err := readIndex(c.indexPath())
	if err == nil {
		return index
	}
	if !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn(fmt.Sprintf("cache index is unreadable, trying backup: %v", err))
	}

	backup, berr := readIndex(c.backupPath())
	if berr != nil {
		if !errors.Is(berr, fs.ErrNotExist) {
			c.logger.Warn(fmt.Sprintf("cache index backup is unreadable, starting empty: %v", berr))
		}
		return make(map[string]*domain.CacheEntry)
	}

	c.logger.Warn(fmt.Sprintf("restored cache index from backup with %d entries", len(backup)))
	//nolint:gosec // backup path is inside the cache dir
	if data, rerr := os.ReadFile(c.backupPath()); rerr == nil {
		if werr := c.store.WriteDurable(c.indexPath(), data, domain.FilePerm); werr != nil {
			c.logger.Warn(fmt.Sprintf("failed to promote cache index backup: %v", werr))
		}
	}
	return backup
}

func readIndex(path string) (map[string]*domain.CacheEntry, error) {
	//nolint:gosec // path is inside the cache dir
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw indexFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Wrap(err, "invalid cache index")
	}

	index := make(map[string]*domain.CacheEntry, len(raw))
	for key, entry := range raw {
		// Entries must name their own data file, so a tampered index cannot
		// point removals outside the cache dir.
		if entry == nil || !entry.CacheType.Valid() || !isKeyHash(key) ||
			entry.FilePath != fileName(entry.CacheType, key) {
			continue
		}
		entry.KeyHash = key
		index[key] = entry
	}
	return index, nil
}

// persistIndex writes the index durably and then refreshes the backup copy.
// Only the primary write can fail the caller.
func (c *Cache) persistIndex() error {
	data, err := json.MarshalIndent(indexFile(c.index), "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error())
	}
	if err := c.store.WriteDurable(c.indexPath(), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheIndexWriteFailed.Error())
	}
	if err := c.store.WriteDurable(c.backupPath(), data, domain.FilePerm); err != nil {
		c.logger.Warn(fmt.Sprintf("failed to write cache index backup: %v", err))
	}
	return nil
}

// persistQuietly is used on read paths, where a failed index write must not
// turn a lookup into an error.
func (c *Cache) persistQuietly() {
	if err := c.persistIndex(); err != nil {
		c.logger.Warn(err.Error())
	}
}
