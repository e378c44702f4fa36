package core

import "sync"

// ScalarStore persists small string values by key. It stands in for the
// browser's localStorage: one value per key, read on start, written rarely.
type ScalarStore interface {
	// Load returns the value for key and whether it exists.
	Load(key string) (string, bool, error)
	// Save stores value under key, replacing any previous value.
	Save(key, value string) error
}

// MemoryStore is a process-local ScalarStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load implements ScalarStore.
func (m *MemoryStore) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save implements ScalarStore.
func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
