package metrics

import "sync"

// Store holds the most recently received Result. It starts zero-valued and
// is mutated only through Set and Reset.
type Store struct {
	mu      sync.RWMutex
	current Result
	version uint64
}

// NewStore creates a store holding the zero Result
func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the current result
func (s *Store) Get() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set merges the present fields of partial over the current result
func (s *Store) Set(partial Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = partial.ApplyTo(s.current)
	s.version++
}

// Reset restores the zero result
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Result{}
	s.version++
}

// Version increases on every mutation. Views use it to skip re-rendering.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
