// Package progress tracks percentage progress of in-flight downloads keyed
// by a client-chosen download id. The state is process-local and ephemeral;
// the Store interface is the seam for an external pub/sub backend when the
// service runs with more than one instance.
package progress

import "sync"

// Store maps download ids to an integer percentage in [0, 100].
type Store interface {
	Set(id string, pct int)
	Get(id string) (int, bool)
	Delete(id string)
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]int
}

// NewMemoryStore creates an in-memory Store for single-instance deployments.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]int)}
}

func (s *memoryStore) Set(id string, pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	s.mu.Lock()
	s.entries[id] = pct
	s.mu.Unlock()
}

func (s *memoryStore) Get(id string) (int, bool) {
	s.mu.RLock()
	pct, ok := s.entries[id]
	s.mu.RUnlock()
	return pct, ok
}

func (s *memoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}
