package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryKVStore is a process-local KVStore. Values are copied on the way in
// and out.
type MemoryKVStore struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: map[string][]byte{}}
}

func (m *MemoryKVStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	return cloneBytes(v), nil
}

func (m *MemoryKVStore) Put(_ context.Context, entries ...Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if e.Value == nil {
			delete(m.values, e.Key)
			continue
		}
		m.values[e.Key] = cloneBytes(e.Value)
	}
	m.writes++
	return nil
}

// Writes reports how many Put calls have been applied.
func (m *MemoryKVStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryKVStore) Close() error { return nil }
