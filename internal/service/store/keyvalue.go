package store

import (
	"context"
	"sync"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
)

// KeyValueStore is an in-memory map-of-maps resource store, the second
// service flavor the broker can offer. All state is process-local.
type KeyValueStore struct {
	mu     sync.RWMutex
	stores map[string]map[string]interface{}
}

// NewKeyValueStore creates an empty KeyValueStore.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{stores: make(map[string]map[string]interface{})}
}

// CreateResource creates an empty map keyed by the service instance ID.
func (s *KeyValueStore) CreateResource(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores[id] = make(map[string]interface{})
	return nil
}

// DeleteResource removes the map for the given instance ID.
func (s *KeyValueStore) DeleteResource(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, id)
	return nil
}

// Get returns the value stored under key in the given instance's map.
func (s *KeyValueStore) Get(id, key string) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.stores[id]
	if !ok {
		return nil, domain.ErrNotFound("key-value store %q not found", id)
	}
	v, ok := m[key]
	if !ok {
		return nil, domain.ErrNotFound("key %q not found in store %q", key, id)
	}
	return v, nil
}

// Put stores value under key in the given instance's map.
func (s *KeyValueStore) Put(id, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.stores[id]
	if !ok {
		return domain.ErrNotFound("key-value store %q not found", id)
	}
	m[key] = value
	return nil
}

// Remove deletes key from the given instance's map and returns the removed
// value.
func (s *KeyValueStore) Remove(id, key string) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.stores[id]
	if !ok {
		return nil, domain.ErrNotFound("key-value store %q not found", id)
	}
	v, ok := m[key]
	if !ok {
		return nil, domain.ErrNotFound("key %q not found in store %q", key, id)
	}
	delete(m, key)
	return v, nil
}

var _ domain.ResourceStore = (*KeyValueStore)(nil)
