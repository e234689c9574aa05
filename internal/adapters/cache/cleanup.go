package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/scout/internal/core/domain"
)

// cleanupOrphans deletes data files the index does not reference and temp
// files left by interrupted writes. It returns the number of data files
// removed; temp files are not counted.
func (c *Cache) cleanupOrphans() int {
	referenced := make(map[string]struct{}, len(c.index))
	for _, entry := range c.index {
		referenced[entry.FilePath] = struct{}{}
	}

	entries, err := os.ReadDir(c.cfg.Dir)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("failed to scan cache dir for orphans: %v", err))
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		temp := strings.HasPrefix(name, domain.TempPrefix)
		if !temp && !isOrphan(name, referenced) {
			continue
		}
		if err := os.Remove(filepath.Join(c.cfg.Dir, name)); err != nil {
			c.logger.Warn(fmt.Sprintf("failed to remove orphaned cache file %s: %v", name, err))
			continue
		}
		if !temp {
			removed++
		}
	}
	return removed
}

func isOrphan(name string, referenced map[string]struct{}) bool {
	if name == domain.IndexFileName || name == domain.IndexBackupName() {
		return false
	}
	for _, t := range domain.CacheTypes() {
		if strings.HasPrefix(name, string(t)+"_") && strings.HasSuffix(name, ".json") {
			_, ok := referenced[name]
			return !ok
		}
	}
	return false
}
