package cache

import (
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
)

// Factory opens caches from settings.
type Factory struct {
	logger ports.Logger
	opts   []Option
}

var _ ports.CacheFactory = (*Factory)(nil)

// NewFactory creates a Factory whose caches share opts.
func NewFactory(log ports.Logger, opts ...Option) *Factory {
	return &Factory{logger: log, opts: opts}
}

// OpenCache converts cfg and opens the cache.
func (f *Factory) OpenCache(cfg domain.CacheSettings) (ports.Cache, error) {
	c, err := New(Config{
		Dir:          cfg.Dir,
		Enabled:      cfg.Enabled,
		DiscoveryTTL: cfg.DiscoveryTTL,
		ResearchTTL:  cfg.ResearchTTL,
		MaxSizeBytes: cfg.MaxSizeBytes(),
	}, f.logger, f.opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
