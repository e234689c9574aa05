package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scout/internal/adapters/cache"
	"go.trai.ch/scout/internal/adapters/checkpoint"
	"go.trai.ch/scout/internal/adapters/logger"
	"go.trai.ch/scout/internal/adapters/metrics"
	"go.trai.ch/scout/internal/adapters/telemetry"
	"go.trai.ch/scout/internal/app"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/scout/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	ctrl        *gomock.Controller
	loader      *mocks.MockConfigLoader
	log         *mocks.MockLogger
	exporter    *mocks.MockMetricsExporter
	providers   *mocks.MockProviderFactory
	caches      *mocks.MockCacheFactory
	checkpoints *mocks.MockCheckpointFactory
	scaler      *mocks.MockWorkerScaler
	settings    domain.Settings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	return &fixture{
		ctrl:        ctrl,
		loader:      mocks.NewMockConfigLoader(ctrl),
		log:         log,
		exporter:    mocks.NewMockMetricsExporter(ctrl),
		providers:   mocks.NewMockProviderFactory(ctrl),
		caches:      mocks.NewMockCacheFactory(ctrl),
		checkpoints: mocks.NewMockCheckpointFactory(ctrl),
		scaler:      mocks.NewMockWorkerScaler(ctrl),
		settings: domain.Settings{
			Cache: domain.CacheSettings{
				Dir:          filepath.Join(dir, "cache"),
				Enabled:      true,
				DiscoveryTTL: time.Hour,
				ResearchTTL:  time.Hour,
			},
			Checkpoint: domain.CheckpointSettings{Dir: filepath.Join(dir, "checkpoints"), MaxRetained: 3, Every: 5},
			Provider:   domain.ProviderSettings{Kind: domain.ProviderFixture, Name: "fixture"},
			Log:        domain.LogSettings{Format: domain.LogFormatPretty},
			Metrics:    domain.MetricsSettings{File: filepath.Join(dir, "scout.prom")},
		},
	}
}

func (f *fixture) app(log ports.Logger) *app.App {
	if log == nil {
		log = f.log
	}
	return app.New(f.loader, log, telemetry.NewNoOpTracer(), metrics.NewNop(), f.exporter,
		f.providers, f.caches, f.checkpoints, f.scaler)
}

func plan() domain.ResearchRequest {
	return domain.ResearchRequest{
		Regions:        []string{"North"},
		DwellingType:   "house",
		MaxMedianPrice: 800000,
		NumEntities:    1,
	}
}

// expectRun wires a complete run against a provider that finds one candidate.
func (f *fixture) expectRun(t *testing.T) {
	t.Helper()

	provider := mocks.NewMockResearchProvider(f.ctrl)
	provider.EXPECT().Name().Return("fixture").AnyTimes()
	provider.EXPECT().Discover(gomock.Any(), gomock.Any(), "North").
		Return([]domain.Candidate{{Name: "Alpha", State: "NSW"}}, nil)
	provider.EXPECT().Research(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Metrics{Identity: domain.Identity{Name: "Alpha", State: "NSW"}, CompositeScore: 70}, nil)

	f.loader.EXPECT().LoadSettings("").Return(f.settings, nil)
	f.providers.EXPECT().NewProvider(f.settings.Provider).Return(provider, nil)
	f.checkpoints.EXPECT().NewOpener(f.settings.Checkpoint).
		Return(checkpoint.NewOpener(f.settings.Checkpoint.Dir, 3, f.log))
	f.exporter.EXPECT().WriteFile(f.settings.Metrics.File).Return(nil)
}

func (f *fixture) openCache(t *testing.T, wantEnabled bool) {
	t.Helper()
	f.caches.EXPECT().OpenCache(gomock.Any()).DoAndReturn(func(cfg domain.CacheSettings) (ports.Cache, error) {
		assert.Equal(t, wantEnabled, cfg.Enabled)
		return cache.New(cache.Config{
			Dir:          cfg.Dir,
			Enabled:      cfg.Enabled,
			DiscoveryTTL: cfg.DiscoveryTTL,
			ResearchTTL:  cfg.ResearchTTL,
		}, f.log)
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.expectRun(t)
	f.openCache(t, false)
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(plan(), nil)
	f.scaler.EXPECT().WorkerCounts(domain.WorkerSettings{Discovery: 2}).
		Return(domain.WorkerCounts{Discovery: 2, Research: 1})

	res, err := f.app(nil).Run(context.Background(), app.RunOptions{
		PlanPath:         "plan.yaml",
		RunID:            "run-1",
		DiscoveryWorkers: 2,
		NoCache:          true,
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, domain.RunCompleted, res.Status)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Alpha", res.Entities[0].Identity.Name)
	assert.FileExists(t, filepath.Join(f.settings.Checkpoint.Dir, "run-1", "discovery.json"))
}

func TestApp_Run_GeneratesRunID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.expectRun(t)
	f.openCache(t, true)
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(plan(), nil)
	f.scaler.EXPECT().WorkerCounts(domain.WorkerSettings{}).Return(domain.WorkerCounts{Discovery: 1, Research: 1})

	res, err := f.app(nil).Run(context.Background(), app.RunOptions{PlanPath: "plan.yaml"})
	require.NoError(t, err)

	id, err := uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestApp_Run_PlanRunIDUsed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.expectRun(t)
	f.openCache(t, true)
	req := plan()
	req.RunID = "from-plan"
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(req, nil)
	f.scaler.EXPECT().WorkerCounts(gomock.Any()).Return(domain.WorkerCounts{Discovery: 1, Research: 1})

	res, err := f.app(nil).Run(context.Background(), app.RunOptions{PlanPath: "plan.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "from-plan", res.RunID)
}

func TestApp_Run_InvalidRunID(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.loader.EXPECT().LoadSettings("").Return(f.settings, nil)
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(plan(), nil)

	_, err := f.app(nil).Run(context.Background(), app.RunOptions{PlanPath: "plan.yaml", RunID: "../escape"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestApp_Run_SettingsError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.loader.EXPECT().LoadSettings("scout.yaml").Return(domain.Settings{}, domain.NewConfigurationError("bad settings"))

	_, err := f.app(nil).Run(context.Background(), app.RunOptions{
		GlobalOptions: app.GlobalOptions{ConfigPath: "scout.yaml"},
		PlanPath:      "plan.yaml",
	})
	require.ErrorContains(t, err, "bad settings")
}

func TestApp_Run_ProviderError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.loader.EXPECT().LoadSettings("").Return(f.settings, nil)
	f.loader.EXPECT().LoadPlan("plan.yaml").Return(plan(), nil)
	f.providers.EXPECT().NewProvider(f.settings.Provider).
		Return(nil, domain.NewConfigurationError("provider.api_key is required"))

	_, err := f.app(nil).Run(context.Background(), app.RunOptions{PlanPath: "plan.yaml", RunID: "r"})
	require.ErrorContains(t, err, "provider.api_key is required")
}

func TestApp_LogFormatOverride(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.loader.EXPECT().LoadSettings("").Return(f.settings, nil)

	_, err := f.app(logger.New()).CacheStats(context.Background(), app.GlobalOptions{LogFormat: "xml"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfiguration))
}

func TestApp_CacheCommands(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := mocks.NewMockCache(f.ctrl)
	f.loader.EXPECT().LoadSettings("").Return(f.settings, nil).Times(3)
	f.caches.EXPECT().OpenCache(f.settings.Cache).Return(c, nil).Times(3)

	parts := domain.KeyParts{"region": "North"}
	c.EXPECT().Stats().Return(domain.CacheStats{TotalEntries: 4, Enabled: true}, nil)
	c.EXPECT().Clear(domain.CacheResearch).Return(2, nil)
	c.EXPECT().Invalidate(domain.CacheDiscovery, parts).Return(true, nil)

	a := f.app(nil)
	ctx := context.Background()

	stats, err := a.CacheStats(ctx, app.GlobalOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalEntries)

	n, err := a.ClearCache(ctx, app.GlobalOptions{}, domain.CacheResearch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := a.InvalidateCache(ctx, app.GlobalOptions{}, domain.CacheDiscovery, parts)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestApp_InvalidateCache_RequiresKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.app(nil).InvalidateCache(context.Background(), app.GlobalOptions{}, domain.CacheResearch, nil)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestApp_Checkpoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	opener := mocks.NewMockCheckpointOpener(f.ctrl)
	store := mocks.NewMockCheckpointStore(f.ctrl)
	f.loader.EXPECT().LoadSettings("").Return(f.settings, nil).Times(3)
	f.checkpoints.EXPECT().NewOpener(f.settings.Checkpoint).Return(opener).Times(3)
	opener.EXPECT().Open("run-1").Return(store, nil).Times(3)

	infos := []domain.CheckpointInfo{{Name: "discovery", Phase: domain.PhaseDiscovery, Verified: true}}
	record := &domain.CheckpointRecord{RunID: "run-1", Phase: domain.PhaseDiscovery}
	store.EXPECT().List().Return(infos, nil)
	store.EXPECT().LoadLatest(domain.PhaseDiscovery).Return(record, nil)
	store.EXPECT().LoadLatest(domain.PhaseResearch).Return(nil, nil)

	a := f.app(nil)
	ctx := context.Background()

	got, err := a.ListCheckpoints(ctx, app.GlobalOptions{}, "run-1")
	require.NoError(t, err)
	assert.Equal(t, infos, got)

	rec, err := a.ShowCheckpoint(ctx, app.GlobalOptions{}, "run-1", domain.PhaseDiscovery)
	require.NoError(t, err)
	assert.Equal(t, record, rec)

	_, err = a.ShowCheckpoint(ctx, app.GlobalOptions{}, "run-1", domain.PhaseResearch)
	require.ErrorContains(t, err, "no valid checkpoint found")
}
