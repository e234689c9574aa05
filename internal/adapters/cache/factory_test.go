package cache_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scout/internal/adapters/cache"
	"go.trai.ch/scout/internal/core/domain"
)

func TestFactory_OpenCache(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	f := cache.NewFactory(quietLogger(t))

	c, err := f.OpenCache(domain.CacheSettings{
		Dir:          dir,
		Enabled:      true,
		DiscoveryTTL: time.Hour,
		ResearchTTL:  time.Hour,
		MaxSizeMB:    2,
	})
	require.NoError(t, err)
	assert.DirExists(t, dir)

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.True(t, stats.Enabled)
	assert.Equal(t, int64(2*1024*1024), stats.MaxSizeBytes)
}

func TestFactory_OpenCacheDisabled(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "cache")
	c, err := cache.NewFactory(quietLogger(t)).OpenCache(domain.CacheSettings{Dir: dir})
	require.NoError(t, err)
	assert.NoDirExists(t, dir)

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.False(t, stats.Enabled)
}
