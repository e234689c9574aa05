package orchestrator_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/scout/internal/engine/orchestrator"
)

func TestAccountErrorSignal_FirstWriteWins(t *testing.T) {
	t.Parallel()

	s := orchestrator.NewAccountErrorSignal()
	assert.False(t, s.IsSet())
	assert.NoError(t, s.Get())
	assert.False(t, s.Set(nil))

	first := errors.New("first")
	assert.True(t, s.Set(first))
	assert.False(t, s.Set(errors.New("second")))
	assert.True(t, s.IsSet())
	assert.Equal(t, first, s.Get())
}

func TestAccountErrorSignal_Concurrent(t *testing.T) {
	t.Parallel()

	s := orchestrator.NewAccountErrorSignal()
	var wg sync.WaitGroup
	var winners sync.Map
	for i := range 20 {
		wg.Go(func() {
			if s.Set(fmt.Errorf("err-%d", i)) {
				winners.Store(i, true)
			}
		})
	}
	wg.Wait()

	count := 0
	winners.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestOrderedResultSet(t *testing.T) {
	t.Parallel()

	s := orchestrator.NewOrderedResultSet[string](5)
	var wg sync.WaitGroup
	for _, i := range []int{4, 0, 2} {
		wg.Go(func() {
			s.Put(i, fmt.Sprintf("v%d", i))
		})
	}
	wg.Wait()

	assert.False(t, s.Put(5, "out of range"))
	assert.False(t, s.Put(-1, "out of range"))
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 3, s.Filled())
	assert.Equal(t, []string{"v0", "v2", "v4"}, s.Ordered())

	v, ok := s.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	_, ok = s.Get(1)
	assert.False(t, ok)
}
