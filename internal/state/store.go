package state

import (
	"context"
	"sync"
)

// Store abstracts the host key-value storage that remembers values between
// activations, such as the last seen version of each extension.
type Store interface {
	// Get returns the value stored under key; found is false when nothing is stored
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps values in process memory. Useful for tests and one-shot runs.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates a new, empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
