package cache

import (
	"time"

	"go.trai.ch/scout/internal/core/ports"
)

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the time source used for TTL and access tracking.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithMetrics reports lookups, stores and evictions to m.
func WithMetrics(m ports.MetricsRecorder) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}
