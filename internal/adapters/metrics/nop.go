package metrics

import (
	"time"

	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
)

// Nop discards every observation.
type Nop struct{}

var _ ports.MetricsRecorder = Nop{}

// NewNop returns a recorder that does nothing.
func NewNop() Nop {
	return Nop{}
}

// CacheLookup does nothing.
func (Nop) CacheLookup(domain.CacheType, string) {}

// CacheStored does nothing.
func (Nop) CacheStored(domain.CacheType, int64) {}

// CacheEvicted does nothing.
func (Nop) CacheEvicted(domain.CacheType) {}

// CacheSize does nothing.
func (Nop) CacheSize(int64) {}

// TaskFinished does nothing.
func (Nop) TaskFinished(domain.TaskStatus) {}

// WorkerActive does nothing.
func (Nop) WorkerActive(int) {}

// CheckpointSaved does nothing.
func (Nop) CheckpointSaved(domain.Phase) {}

// CheckpointRejected does nothing.
func (Nop) CheckpointRejected(domain.Phase, string) {}

// SpanFinished does nothing.
func (Nop) SpanFinished(string, time.Duration, bool) {}
