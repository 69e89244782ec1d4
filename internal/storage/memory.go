package storage

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/Veraticus/daily-ledger/internal/service"
)

// MemoryStore is a map-backed service.Store for tests and previews.
type MemoryStore struct {
	values map[string]json.RawMessage
	mu     sync.Mutex
}

var _ service.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

// Get returns a copy of the stored document.
func (m *MemoryStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set stores a copy of value.
func (m *MemoryStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(key, value); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = slices.Clone(value)
	return nil
}

// Remove deletes key.
func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// ReplaceAll validates every entry before writing any of them.
func (m *MemoryStore) ReplaceAll(ctx context.Context, values map[string]json.RawMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for key, value := range values {
		if err := validateEntry(key, value); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range values {
		m.values[key] = slices.Clone(value)
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
