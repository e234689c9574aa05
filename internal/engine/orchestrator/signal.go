package orchestrator

import "sync"

// AccountErrorSignal holds the first account-fatal error seen by any worker.
// Later errors are ignored.
type AccountErrorSignal struct {
	mu  sync.Mutex
	err error
}

// NewAccountErrorSignal returns an empty signal.
func NewAccountErrorSignal() *AccountErrorSignal {
	return &AccountErrorSignal{}
}

// Set records err if no error was recorded yet and reports whether it won.
func (s *AccountErrorSignal) Set(err error) bool {
	if err == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false
	}
	s.err = err
	return true
}

// IsSet reports whether an error was recorded.
func (s *AccountErrorSignal) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err != nil
}

// Get returns the recorded error, or nil.
func (s *AccountErrorSignal) Get() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
