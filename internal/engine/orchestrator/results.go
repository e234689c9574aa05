package orchestrator

import "sync"

// OrderedResultSet collects results written concurrently by index and returns
// them in index order.
type OrderedResultSet[R any] struct {
	mu     sync.Mutex
	size   int
	values map[int]R
}

// NewOrderedResultSet returns a set with size slots.
func NewOrderedResultSet[R any](size int) *OrderedResultSet[R] {
	return &OrderedResultSet[R]{size: size, values: make(map[int]R, size)}
}

// Put stores v at index. Indices outside [0, size) are rejected.
func (s *OrderedResultSet[R]) Put(index int, v R) bool {
	if index < 0 || index >= s.size {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[index] = v
	return true
}

// Get returns the value at index.
func (s *OrderedResultSet[R]) Get(index int) (R, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[index]
	return v, ok
}

// Len returns the number of slots.
func (s *OrderedResultSet[R]) Len() int {
	return s.size
}

// Filled returns the number of slots holding a value.
func (s *OrderedResultSet[R]) Filled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Ordered returns the stored values by ascending index, omitting empty slots.
func (s *OrderedResultSet[R]) Ordered() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]R, 0, len(s.values))
	for i := range s.size {
		if v, ok := s.values[i]; ok {
			out = append(out, v)
		}
	}
	return out
}
