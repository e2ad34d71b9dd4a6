package repository

import (
	"context"
	"sync"
)

// MemoryStore keeps saves in process memory. It is the default backend and
// the one tests use.
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string][]byte)}
}

// Load returns the blob stored under key.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.saves[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save writes the blob under key.
func (s *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.saves[key] = cp
	return nil
}

// Delete removes the save under key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saves, key)
	return nil
}
