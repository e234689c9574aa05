package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scout/cmd/scout/commands"
	"go.trai.ch/scout/internal/app"
	"go.trai.ch/scout/internal/build"
	"go.trai.ch/scout/internal/core/domain"
)

type mockApp struct {
	runFunc        func(ctx context.Context, opts app.RunOptions) (domain.RunResult, error)
	statsFunc      func(ctx context.Context, opts app.GlobalOptions) (domain.CacheStats, error)
	clearFunc      func(ctx context.Context, opts app.GlobalOptions, cacheType domain.CacheType) (int, error)
	invalidateFunc func(ctx context.Context, opts app.GlobalOptions, cacheType domain.CacheType, parts domain.KeyParts) (bool, error)
	listFunc       func(ctx context.Context, opts app.GlobalOptions, runID string) ([]domain.CheckpointInfo, error)
	showFunc       func(ctx context.Context, opts app.GlobalOptions, runID string, phase domain.Phase) (*domain.CheckpointRecord, error)
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) (domain.RunResult, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return domain.RunResult{}, nil
}

func (m *mockApp) CacheStats(ctx context.Context, opts app.GlobalOptions) (domain.CacheStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, opts)
	}
	return domain.CacheStats{}, nil
}

func (m *mockApp) ClearCache(ctx context.Context, opts app.GlobalOptions, cacheType domain.CacheType) (int, error) {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, opts, cacheType)
	}
	return 0, nil
}

func (m *mockApp) InvalidateCache(
	ctx context.Context,
	opts app.GlobalOptions,
	cacheType domain.CacheType,
	parts domain.KeyParts,
) (bool, error) {
	if m.invalidateFunc != nil {
		return m.invalidateFunc(ctx, opts, cacheType, parts)
	}
	return false, nil
}

func (m *mockApp) ListCheckpoints(ctx context.Context, opts app.GlobalOptions, runID string) ([]domain.CheckpointInfo, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts, runID)
	}
	return nil, nil
}

func (m *mockApp) ShowCheckpoint(
	ctx context.Context,
	opts app.GlobalOptions,
	runID string,
	phase domain.Phase,
) (*domain.CheckpointRecord, error) {
	if m.showFunc != nil {
		return m.showFunc(ctx, opts, runID, phase)
	}
	return nil, nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func sampleResult() domain.RunResult {
	return domain.RunResult{
		RunID:  "run-1",
		Status: domain.RunCompleted,
		Entities: []domain.Metrics{
			{Identity: domain.Identity{Name: "Parramatta", State: "NSW"}, MedianPrice: 750000, CompositeScore: 72.5},
			{Identity: domain.Identity{Name: "Geelong", State: "VIC"}, CompositeScore: 50, Fallback: true},
		},
		Discovered: 6,
		Succeeded:  1,
		Fallbacks:  1,
		CacheHits:  2,
	}
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) (domain.RunResult, error) {
				captured = opts
				return sampleResult(), nil
			},
		}

		out, err := execute(t, mock, "run", "--plan", "plan.yaml", "--run-id", "run-1",
			"--discovery-workers", "4", "--research-workers", "2", "--no-cache",
			"--config", "scout.yaml", "--log-format", "json")
		require.NoError(t, err)

		assert.Equal(t, app.RunOptions{
			GlobalOptions:    app.GlobalOptions{ConfigPath: "scout.yaml", LogFormat: "json"},
			PlanPath:         "plan.yaml",
			RunID:            "run-1",
			DiscoveryWorkers: 4,
			ResearchWorkers:  2,
			NoCache:          true,
		}, captured)
		assert.Contains(t, out, "Parramatta")
		assert.Contains(t, out, "$750000")
		assert.Contains(t, out, "fallback")
		assert.Contains(t, out, "run run-1 Completed")
		assert.Contains(t, out, "discovered 6, resumed 0, succeeded 1, fallbacks 1, skipped 0, cache hits 2")
	})

	t.Run("prints json", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) (domain.RunResult, error) {
				return sampleResult(), nil
			},
		}

		out, err := execute(t, mock, "run", "-p", "plan.yaml", "--json")
		require.NoError(t, err)

		var decoded domain.RunResult
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "run-1", decoded.RunID)
		assert.Len(t, decoded.Entities, 2)
	})

	t.Run("prints partial results before returning the abort", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) (domain.RunResult, error) {
				res := sampleResult()
				res.Status = domain.RunAborted
				res.FatalError = "credits exhausted"
				return res, errors.New("run aborted with partial results: credits exhausted")
			},
		}

		out, err := execute(t, mock, "run", "--plan", "plan.yaml")
		require.ErrorContains(t, err, "credits exhausted")
		assert.Contains(t, out, "AbortedWithPartialResults")
		assert.Contains(t, out, "stopped: credits exhausted")
	})

	t.Run("returns setup errors without output", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) (domain.RunResult, error) {
				return domain.RunResult{}, errors.New("simulated error")
			},
		}

		out, err := execute(t, mock, "run", "--plan", "plan.yaml")
		require.ErrorContains(t, err, "simulated error")
		assert.NotContains(t, out, "run ")
	})

	t.Run("requires a plan", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) (domain.RunResult, error) {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock, "run")
		require.ErrorContains(t, err, "plan")
	})
}

func TestCommands_Cache(t *testing.T) {
	t.Run("stats", func(t *testing.T) {
		mock := &mockApp{
			statsFunc: func(_ context.Context, _ app.GlobalOptions) (domain.CacheStats, error) {
				return domain.CacheStats{
					Enabled:        true,
					TotalEntries:   3,
					DiscoveryCount: 1,
					ResearchCount:  2,
					TotalSizeBytes: 2048,
					MaxSizeBytes:   500 * 1024 * 1024,
				}, nil
			},
		}

		out, err := execute(t, mock, "cache", "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "Entries")
		assert.Contains(t, out, "2.0 KiB / 500.0 MiB")
	})

	t.Run("stats when disabled", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "cache", "stats")
		require.NoError(t, err)
		assert.Contains(t, out, "cache is disabled")
	})

	t.Run("clear with type", func(t *testing.T) {
		var captured domain.CacheType
		mock := &mockApp{
			clearFunc: func(_ context.Context, _ app.GlobalOptions, cacheType domain.CacheType) (int, error) {
				captured = cacheType
				return 5, nil
			},
		}

		out, err := execute(t, mock, "cache", "clear", "--type", "research")
		require.NoError(t, err)
		assert.Equal(t, domain.CacheResearch, captured)
		assert.Contains(t, out, "removed 5 entries")
	})

	t.Run("clear rejects unknown type", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "cache", "clear", "--type", "weather")
		require.ErrorContains(t, err, "unknown cache type")
	})

	t.Run("invalidate parses key parts", func(t *testing.T) {
		var captured domain.KeyParts
		mock := &mockApp{
			invalidateFunc: func(
				_ context.Context, _ app.GlobalOptions, _ domain.CacheType, parts domain.KeyParts,
			) (bool, error) {
				captured = parts
				return true, nil
			},
		}

		out, err := execute(t, mock, "cache", "invalidate", "--type", "discovery",
			"--key", "region=Sydney", "-k", "max_price=800000")
		require.NoError(t, err)
		assert.Equal(t, domain.KeyParts{"region": "Sydney", "max_price": "800000"}, captured)
		assert.Contains(t, out, "entry removed")
	})

	t.Run("invalidate rejects malformed key", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "cache", "invalidate", "--type", "discovery", "--key", "region")
		require.ErrorContains(t, err, "name=value")
	})
}

func TestCommands_Checkpoints(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		mock := &mockApp{
			listFunc: func(_ context.Context, _ app.GlobalOptions, runID string) ([]domain.CheckpointInfo, error) {
				assert.Equal(t, "run-1", runID)
				return []domain.CheckpointInfo{
					{Name: "discovery", Phase: domain.PhaseDiscovery, Verified: true},
					{Name: "research_0001", Phase: domain.PhaseResearch, Sequence: 1},
				}, nil
			},
		}

		out, err := execute(t, mock, "checkpoints", "list", "run-1")
		require.NoError(t, err)
		assert.Contains(t, out, "research_0001")
		assert.Contains(t, out, "✗")
	})

	t.Run("list empty", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "checkpoints", "list", "run-2")
		require.NoError(t, err)
		assert.Contains(t, out, "no checkpoints for run run-2")
	})

	t.Run("show", func(t *testing.T) {
		mock := &mockApp{
			showFunc: func(
				_ context.Context, _ app.GlobalOptions, _ string, phase domain.Phase,
			) (*domain.CheckpointRecord, error) {
				assert.Equal(t, domain.PhaseDiscovery, phase)
				return &domain.CheckpointRecord{
					RunID: "run-1",
					Phase: domain.PhaseDiscovery,
					State: json.RawMessage(`{"candidates":[]}`),
				}, nil
			},
		}

		out, err := execute(t, mock, "checkpoints", "show", "run-1", "--phase", "discovery")
		require.NoError(t, err)
		assert.Contains(t, out, `"run_id": "run-1"`)
		assert.Contains(t, out, `"candidates": []`)
	})

	t.Run("show rejects unknown phase", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "checkpoints", "show", "run-1", "--phase", "ranking")
		require.ErrorContains(t, err, "unknown phase")
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
