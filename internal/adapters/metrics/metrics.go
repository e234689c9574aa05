// Package metrics exposes Prometheus collectors for cache, checkpoint and
// orchestrator activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Prometheus implements ports.MetricsRecorder on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	cacheLookups        *prometheus.CounterVec
	cachePuts           *prometheus.CounterVec
	cacheStoredBytes    *prometheus.CounterVec
	cacheEvictions      *prometheus.CounterVec
	cacheSize           prometheus.Gauge
	tasks               *prometheus.CounterVec
	activeWorkers       prometheus.Gauge
	checkpointsSaved    *prometheus.CounterVec
	checkpointsRejected *prometheus.CounterVec
	spanDuration        *prometheus.HistogramVec
}

var _ ports.MetricsRecorder = (*Prometheus)(nil)

// NewPrometheus registers every collector on a fresh registry.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_cache_lookups_total",
				Help: "Total number of cache lookups, labeled by cache type and outcome.",
			},
			[]string{"type", "outcome"},
		),
		cachePuts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_cache_puts_total",
				Help: "Total number of cache writes, labeled by cache type.",
			},
			[]string{"type"},
		),
		cacheStoredBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_cache_stored_bytes_total",
				Help: "Total number of payload bytes written to the cache, labeled by cache type.",
			},
			[]string{"type"},
		),
		cacheEvictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_cache_evictions_total",
				Help: "Total number of entries evicted to honor the size limit, labeled by cache type.",
			},
			[]string{"type"},
		),
		cacheSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scout_cache_size_bytes",
				Help: "Current total size of cached payloads.",
			},
		),
		tasks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_tasks_total",
				Help: "Total number of orchestrated tasks, labeled by final status.",
			},
			[]string{"status"},
		),
		activeWorkers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scout_active_workers",
				Help: "Number of workers currently running a fetch.",
			},
		),
		checkpointsSaved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_checkpoints_saved_total",
				Help: "Total number of checkpoints written, labeled by phase.",
			},
			[]string{"phase"},
		),
		checkpointsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scout_checkpoints_rejected_total",
				Help: "Total number of checkpoints ignored during resume, labeled by phase and reason.",
			},
			[]string{"phase", "reason"},
		),
		spanDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scout_span_duration_seconds",
				Help:    "Histogram of traced operation durations, labeled by span name and status.",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"name", "status"},
		),
	}
}

// Registry returns the registry holding every collector.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteFile writes the current values in the text exposition format.
func (p *Prometheus) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsExportFailed.Error()), "path", path)
	}
	return nil
}

// CacheLookup counts a cache lookup.
func (p *Prometheus) CacheLookup(cacheType domain.CacheType, outcome string) {
	p.cacheLookups.WithLabelValues(string(cacheType), outcome).Inc()
}

// CacheStored counts a cache write.
func (p *Prometheus) CacheStored(cacheType domain.CacheType, sizeBytes int64) {
	p.cachePuts.WithLabelValues(string(cacheType)).Inc()
	p.cacheStoredBytes.WithLabelValues(string(cacheType)).Add(float64(sizeBytes))
}

// CacheEvicted counts an LRU eviction.
func (p *Prometheus) CacheEvicted(cacheType domain.CacheType) {
	p.cacheEvictions.WithLabelValues(string(cacheType)).Inc()
}

// CacheSize sets the cache size gauge.
func (p *Prometheus) CacheSize(totalBytes int64) {
	p.cacheSize.Set(float64(totalBytes))
}

// TaskFinished counts a finished task.
func (p *Prometheus) TaskFinished(status domain.TaskStatus) {
	p.tasks.WithLabelValues(string(status)).Inc()
}

// WorkerActive moves the active workers gauge by delta.
func (p *Prometheus) WorkerActive(delta int) {
	p.activeWorkers.Add(float64(delta))
}

// CheckpointSaved counts a written checkpoint.
func (p *Prometheus) CheckpointSaved(phase domain.Phase) {
	p.checkpointsSaved.WithLabelValues(string(phase)).Inc()
}

// CheckpointRejected counts a checkpoint that failed verification.
func (p *Prometheus) CheckpointRejected(phase domain.Phase, reason string) {
	p.checkpointsRejected.WithLabelValues(string(phase), reason).Inc()
}

// SpanFinished observes the duration of a traced operation.
func (p *Prometheus) SpanFinished(name string, duration time.Duration, failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	p.spanDuration.WithLabelValues(name, status).Observe(duration.Seconds())
}
