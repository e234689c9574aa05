package checkpoint_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scout/internal/adapters/checkpoint"
	"go.trai.ch/scout/internal/core/domain"
	"go.trai.ch/scout/internal/core/ports"
	"go.trai.ch/scout/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func quietLogger(t *testing.T) ports.Logger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

type researchState struct {
	Completed []string `json:"completed"`
}

func newManager(t *testing.T, root, runID string) *checkpoint.Manager {
	t.Helper()
	m, err := checkpoint.NewManager(root, runID, 3, quietLogger(t), checkpoint.WithClock(fixedClock))
	require.NoError(t, err)
	return m
}

func TestManager_EnvelopeGolden(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m := newManager(t, root, "golden-run")

	state := map[string][]string{"candidates": {"Parramatta", "Geelong"}}
	require.NoError(t, m.Save(domain.PhaseDiscovery, state, 0))

	data, err := os.ReadFile(filepath.Join(root, "golden-run", "discovery.json"))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "discovery_envelope", data)

	digest, err := os.ReadFile(filepath.Join(root, "golden-run", "discovery.json.sha256"))
	require.NoError(t, err)
	assert.Len(t, string(digest), 64)
}

func TestManager_SaveAndLoadLatest(t *testing.T) {
	t.Parallel()

	m := newManager(t, t.TempDir(), "run-1")

	record, err := m.LoadLatest(domain.PhaseDiscovery)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.False(t, m.Has(domain.PhaseDiscovery))

	require.NoError(t, m.Save(domain.PhaseDiscovery, map[string]int{"count": 2}, 0))
	assert.True(t, m.Has(domain.PhaseDiscovery))

	record, err = m.LoadLatest(domain.PhaseDiscovery)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "run-1", record.RunID)
	assert.Equal(t, domain.PhaseDiscovery, record.Phase)
	assert.JSONEq(t, `{"count": 2}`, string(record.State))
}

func TestManager_ResearchFallsBackToDiscovery(t *testing.T) {
	t.Parallel()

	m := newManager(t, t.TempDir(), "run-1")
	require.NoError(t, m.Save(domain.PhaseDiscovery, map[string]int{"count": 1}, 0))

	assert.True(t, m.Has(domain.PhaseResearch))
	record, err := m.LoadLatest(domain.PhaseResearch)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.PhaseDiscovery, record.Phase)
}

func TestManager_Rollback(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m := newManager(t, root, "run-1")

	for seq := 1; seq <= 3; seq++ {
		require.NoError(t, m.Save(domain.PhaseResearch, researchState{Completed: make([]string, seq)}, seq))
	}

	// Tamper with the newest checkpoint so that its digest no longer matches.
	latest := filepath.Join(root, "run-1", "research_0003.json")
	data, err := os.ReadFile(latest)
	require.NoError(t, err)
	data = append(data, ' ')
	require.NoError(t, os.WriteFile(latest, data, 0o600))

	record, err := m.LoadLatest(domain.PhaseResearch)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 2, record.Sequence)

	// A missing digest is not trusted either.
	require.NoError(t, os.Remove(filepath.Join(root, "run-1", "research_0002.json.sha256")))

	record, err = m.LoadLatest(domain.PhaseResearch)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 1, record.Sequence)

	var state researchState
	require.NoError(t, json.Unmarshal(record.State, &state))
	assert.Len(t, state.Completed, 1)
}

func TestManager_RejectsForeignRunID(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := newManager(t, root, "run-a")
	require.NoError(t, a.Save(domain.PhaseDiscovery, map[string]int{}, 0))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "run-b"), domain.DirPerm))
	for _, name := range []string{"discovery.json", "discovery.json.sha256"} {
		data, err := os.ReadFile(filepath.Join(root, "run-a", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(root, "run-b", name), data, 0o600))
	}

	ctrl := gomock.NewController(t)
	rec := mocks.NewMockMetricsRecorder(ctrl)
	rec.EXPECT().CheckpointRejected(domain.PhaseDiscovery, checkpoint.RejectRunIDMismatch).Times(1)

	b, err := checkpoint.NewManager(root, "run-b", 3, quietLogger(t), checkpoint.WithMetrics(rec))
	require.NoError(t, err)

	record, err := b.LoadLatest(domain.PhaseDiscovery)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestManager_Prune(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m := newManager(t, root, "run-1")

	require.NoError(t, m.Save(domain.PhaseDiscovery, map[string]int{}, 0))
	for seq := 1; seq <= 5; seq++ {
		require.NoError(t, m.Save(domain.PhaseResearch, researchState{}, seq))
	}

	infos, err := m.List()
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
		assert.True(t, info.Verified, info.Name)
	}
	assert.Equal(t, []string{"discovery", "research_0003", "research_0004", "research_0005"}, names)

	_, err = os.Stat(filepath.Join(root, "run-1", "research_0001.json.sha256"))
	assert.True(t, os.IsNotExist(err), "digests are pruned with their checkpoints")
}

func TestManager_ListMarksUnverified(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m := newManager(t, root, "run-1")
	require.NoError(t, m.Save(domain.PhaseResearch, researchState{}, 1))
	require.NoError(t, os.Remove(filepath.Join(root, "run-1", "research_0001.json.sha256")))

	infos, err := m.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Verified)
	assert.Equal(t, 1, infos[0].Sequence)
	assert.Equal(t, domain.PhaseResearch, infos[0].Phase)
}

func TestManager_ListMissingRun(t *testing.T) {
	t.Parallel()

	m := newManager(t, t.TempDir(), "never-saved")
	infos, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestManager_SaveRejectsUnloadableSequence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m := newManager(t, root, "run-1")

	err := m.Save(domain.PhaseResearch, researchState{}, 0)
	require.ErrorContains(t, err, "research checkpoint sequence must be at least 1")
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	err = m.Save(domain.PhaseDiscovery, researchState{}, 2)
	require.ErrorContains(t, err, "discovery checkpoint sequence must be 0")

	assert.NoFileExists(t, filepath.Join(root, "run-1", "research.json"))
	assert.False(t, m.Has(domain.PhaseResearch))
}

func TestNewManager_InvalidRunID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "../escape", "has space", string(make([]byte, 101))} {
		_, err := checkpoint.NewManager(t.TempDir(), id, 3, quietLogger(t))
		require.Error(t, err, "run id %q", id)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	}
}

func TestOpener_Open(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opener := checkpoint.NewOpener(root, 3, quietLogger(t))

	store, err := opener.Open("run-42")
	require.NoError(t, err)
	assert.Equal(t, "run-42", store.RunID())

	_, err = opener.Open("bad/id")
	require.Error(t, err)
}
