package checkpoint_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scout/internal/adapters/checkpoint"
	"go.trai.ch/scout/internal/core/domain"
)

func TestFactory_NewOpener(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	opener := checkpoint.NewFactory(quietLogger(t), checkpoint.WithClock(fixedClock)).
		NewOpener(domain.CheckpointSettings{Dir: root, MaxRetained: 2, Every: 5})

	store, err := opener.Open("run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", store.RunID())

	require.NoError(t, store.Save(domain.PhaseDiscovery, []string{"a"}, 0))
	assert.FileExists(t, filepath.Join(root, "run-1", "discovery.json"))

	_, err = opener.Open("../escape")
	require.Error(t, err)
}
