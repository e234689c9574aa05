package ports

import (
	"time"

	"go.trai.ch/scout/internal/core/domain"
)

// MetricsRecorder receives operational counters from the cache, the
// checkpoint store and the orchestrator.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type MetricsRecorder interface {
	CacheLookup(cacheType domain.CacheType, outcome string)
	CacheStored(cacheType domain.CacheType, sizeBytes int64)
	CacheEvicted(cacheType domain.CacheType)
	CacheSize(totalBytes int64)
	TaskFinished(status domain.TaskStatus)
	WorkerActive(delta int)
	CheckpointSaved(phase domain.Phase)
	CheckpointRejected(phase domain.Phase, reason string)
	SpanFinished(name string, duration time.Duration, failed bool)
}

// MetricsExporter writes the collected metrics in the Prometheus text format.
type MetricsExporter interface {
	WriteFile(path string) error
}
