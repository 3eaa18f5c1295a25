package engine

import (
	"slices"
	"sync"
)

// MemoryStore is a SaveStore that lives for the process only.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

// Set stores value under key for gameID.
func (m *MemoryStore) Set(gameID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.data[gameID]
	if !ok {
		game = make(map[string]string)
		m.data[gameID] = game
	}
	game[key] = value
	return nil
}

// Get returns the value under key.
func (m *MemoryStore) Get(gameID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[gameID][key]
	return v, ok, nil
}

// Delete removes key.
func (m *MemoryStore) Delete(gameID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[gameID], key)
	return nil
}

// Keys returns the sorted keys for gameID.
func (m *MemoryStore) Keys(gameID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data[gameID]))
	for k := range m.data[gameID] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
