// Package storage defines the key-value persistence contract the SDK
// uses to keep long-lived subscription key material, together with an
// in-memory implementation for defaults and tests.
//
// Any conforming Store is substitutable; the SDK depends only on the
// interface and never on a concrete database. Durability and
// consistency are the implementation's concern. Concurrent writes to
// the same key from two callers are last-write-wins: callers needing
// atomicity must serialize at this boundary.
package storage

import (
	"errors"
	"sync"
)

// ErrDataNotFound is returned by Store.Get when no value exists for a
// key. Absence is a distinct outcome from a storage failure.
var ErrDataNotFound = errors.New("data not found")

// Store is a minimal key-value persistence abstraction. Implementations
// must be safe for concurrent use; the SDK performs no internal retry,
// so a failed call surfaces immediately to the caller.
type Store interface {
	// Get returns the value stored under key, or ErrDataNotFound when
	// the key is absent.
	Get(key string) ([]byte, error)
	// Put stores value under key, overwriting any existing value.
	Put(key string, value []byte) error
}

// MemStore is a mutex-guarded in-memory Store.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value so callers cannot mutate the
// store's state through the returned slice.
func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrDataNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores a copy of value under key.
func (m *MemStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
