package checkpoint

import (
	"time"

	"go.trai.ch/scout/internal/core/ports"
)

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the time source used for envelope timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithMetrics reports saves and rejected checkpoints to rec.
func WithMetrics(rec ports.MetricsRecorder) Option {
	return func(m *Manager) {
		m.metrics = rec
	}
}
