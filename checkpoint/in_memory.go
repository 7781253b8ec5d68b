package checkpoint

import "sync"

// InMemoryStore is a volatile Store implementation keeping checkpoints in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo runs. Stored and returned checkpoints are cloned
// so callers cannot mutate internal state.
type InMemoryStore struct {
	mu          sync.RWMutex
	checkpoints map[string]Checkpoint
}

// NewInMemoryStore constructs an empty in-memory checkpoint store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{checkpoints: make(map[string]Checkpoint)}
}

// Get returns a clone of the stored checkpoint, if present.
func (s *InMemoryStore) Get(threadID string) (*Checkpoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.checkpoints[threadID]
	if !ok {
		return nil, false, nil
	}
	clone := cp
	clone.State = cp.State.Clone()
	return &clone, true, nil
}

// Put stores a clone of the provided checkpoint under the thread ID.
func (s *InMemoryStore) Put(threadID string, cp Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp.State = cp.State.Clone()
	s.checkpoints[threadID] = cp
	return nil
}
