// Package app implements the application layer for scout.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/scout/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// formatter is implemented by loggers that can switch output format.
type formatter interface {
	SetFormat(format string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	metrics      ports.MetricsRecorder
	exporter     ports.MetricsExporter
	providers    ports.ProviderFactory
	caches       ports.CacheFactory
	checkpoints  ports.CheckpointFactory
	scaler       ports.WorkerScaler
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	metrics ports.MetricsRecorder,
	exporter ports.MetricsExporter,
	providers ports.ProviderFactory,
	caches ports.CacheFactory,
	checkpoints ports.CheckpointFactory,
	scaler ports.WorkerScaler,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		metrics:      metrics,
		exporter:     exporter,
		providers:    providers,
		caches:       caches,
		checkpoints:  checkpoints,
		scaler:       scaler,
	}
}

// GlobalOptions are the settings every command accepts.
type GlobalOptions struct {
	ConfigPath string
	LogFormat  string
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	GlobalOptions

	PlanPath         string
	RunID            string
	DiscoveryWorkers int
	ResearchWorkers  int
	NoCache          bool
}

// Run loads the plan and executes the research pipeline. The result is
// returned even when the run aborts.
func (a *App) Run(ctx context.Context, opts RunOptions) (domain.RunResult, error) {
	settings, err := a.loadSettings(opts.GlobalOptions)
	if err != nil {
		return domain.RunResult{}, err
	}

	req, err := a.configLoader.LoadPlan(opts.PlanPath)
	if err != nil {
		return domain.RunResult{}, err
	}
	if err := assignRunID(&req, opts.RunID); err != nil {
		return domain.RunResult{}, err
	}

	provider, err := a.providers.NewProvider(settings.Provider)
	if err != nil {
		return domain.RunResult{}, err
	}
	req.Provider = provider.Name()

	if opts.NoCache {
		settings.Cache.Enabled = false
	}
	cache, err := a.caches.OpenCache(settings.Cache)
	if err != nil {
		return domain.RunResult{}, err
	}

	store, err := a.checkpoints.NewOpener(settings.Checkpoint).Open(req.RunID)
	if err != nil {
		return domain.RunResult{}, err
	}

	overrides := settings.Workers
	if opts.DiscoveryWorkers > 0 {
		overrides.Discovery = opts.DiscoveryWorkers
	}
	if opts.ResearchWorkers > 0 {
		overrides.Research = opts.ResearchWorkers
	}
	workers := a.scaler.WorkerCounts(overrides)

	a.logger.Info(fmt.Sprintf("starting run %s with provider %s", req.RunID, req.Provider))

	runner := pipeline.NewRunner(provider, cache, store, a.logger, a.tracer, a.metrics, pipeline.Config{
		Workers:   workers,
		BatchSize: settings.Checkpoint.Every,
	})
	result, runErr := runner.Run(ctx, req)

	if path := settings.Metrics.File; path != "" {
		if err := a.exporter.WriteFile(path); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to export metrics: %v", err))
		}
	}
	return result, runErr
}

// assignRunID picks the flag value, then the plan's id, then a fresh UUIDv7,
// and validates the request.
func assignRunID(req *domain.ResearchRequest, flag string) error {
	switch {
	case flag != "":
		req.RunID = flag
	case req.RunID == "":
		id, err := uuid.NewV7()
		if err != nil {
			return zerr.Wrap(err, "failed to generate run id")
		}
		req.RunID = id.String()
	}
	return req.Validate()
}

// CacheStats summarizes the configured cache.
func (a *App) CacheStats(_ context.Context, opts GlobalOptions) (domain.CacheStats, error) {
	cache, err := a.openCache(opts)
	if err != nil {
		return domain.CacheStats{}, err
	}
	return cache.Stats()
}

// ClearCache removes entries of cacheType, or all entries when it is empty.
func (a *App) ClearCache(_ context.Context, opts GlobalOptions, cacheType domain.CacheType) (int, error) {
	cache, err := a.openCache(opts)
	if err != nil {
		return 0, err
	}
	count, err := cache.Clear(cacheType)
	if err != nil {
		return count, err
	}
	a.logger.Info(fmt.Sprintf("removed %d cache entries", count))
	return count, nil
}

// InvalidateCache removes one entry and reports whether it existed.
func (a *App) InvalidateCache(
	_ context.Context,
	opts GlobalOptions,
	cacheType domain.CacheType,
	parts domain.KeyParts,
) (bool, error) {
	if len(parts) == 0 {
		return false, domain.NewValidationError("key", "at least one key part is required")
	}
	cache, err := a.openCache(opts)
	if err != nil {
		return false, err
	}
	return cache.Invalidate(cacheType, parts)
}

// ListCheckpoints describes the checkpoint files of a run.
func (a *App) ListCheckpoints(_ context.Context, opts GlobalOptions, runID string) ([]domain.CheckpointInfo, error) {
	store, err := a.openStore(opts, runID)
	if err != nil {
		return nil, err
	}
	return store.List()
}

// ShowCheckpoint returns the newest verified checkpoint of a run for phase.
func (a *App) ShowCheckpoint(
	_ context.Context,
	opts GlobalOptions,
	runID string,
	phase domain.Phase,
) (*domain.CheckpointRecord, error) {
	store, err := a.openStore(opts, runID)
	if err != nil {
		return nil, err
	}
	record, err := store.LoadLatest(phase)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, zerr.With(zerr.With(domain.ErrCheckpointNotFound, "run_id", runID), "phase", string(phase))
	}
	return record, nil
}

func (a *App) openCache(opts GlobalOptions) (ports.Cache, error) {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return nil, err
	}
	return a.caches.OpenCache(settings.Cache)
}

func (a *App) openStore(opts GlobalOptions, runID string) (ports.CheckpointStore, error) {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return nil, err
	}
	return a.checkpoints.NewOpener(settings.Checkpoint).Open(runID)
}

// loadSettings reads the settings and applies the log format, letting the
// flag override the configured one.
func (a *App) loadSettings(opts GlobalOptions) (domain.Settings, error) {
	settings, err := a.configLoader.LoadSettings(opts.ConfigPath)
	if err != nil {
		return domain.Settings{}, err
	}

	format := settings.Log.Format
	if opts.LogFormat != "" {
		format = opts.LogFormat
	}
	if f, ok := a.logger.(formatter); ok {
		if err := f.SetFormat(format); err != nil {
			return domain.Settings{}, err
		}
	}
	return settings, nil
}
