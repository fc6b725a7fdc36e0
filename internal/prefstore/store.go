// Package prefstore persists named preference values as strings. It
// backs both legacy single-key preference migration and the live
// override file for key bindings.
package prefstore

import (
	"sort"
	"sync"
)

// Store is a flat name-to-value surface for preference data.
type Store interface {
	// Get returns the stored value and whether the name is present.
	Get(name string) (string, bool)

	// Set stores a value under name, replacing any existing value.
	Set(name, value string) error

	// Delete removes a name. Deleting an absent name is not an error.
	Delete(name string) error

	// Names returns every stored name in sorted order.
	Names() []string
}

// Memory is an in-memory store, used in tests and as the zero-setup
// default when no preference file is configured.
type Memory struct {
	mu   sync.RWMutex
	vals map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{vals: make(map[string]string)}
}

// Get returns the stored value and whether the name is present.
func (m *Memory) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[name]
	return v, ok
}

// Set stores a value under name.
func (m *Memory) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[name] = value
	return nil
}

// Delete removes a name.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, name)
	return nil
}

// Names returns every stored name in sorted order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.vals))
	for name := range m.vals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ Store = (*Memory)(nil)
