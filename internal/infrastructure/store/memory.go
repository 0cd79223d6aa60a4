package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/smartmall/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory key-value store holding raw JSON.
// Values go through a marshal/unmarshal round-trip on every access so stored
// data behaves exactly like browser local storage.
type MemoryStore struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Get unmarshals the value at key into dest
func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) error {
	s.mutex.RLock()
	raw, exists := s.data[key]
	s.mutex.RUnlock()

	if !exists {
		return domain.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

// Set serializes value and stores it at key
func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = raw
	return nil
}

// Delete removes the value at key; deleting a missing key is not an error
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.data, key)
	return nil
}

// Size returns the current number of keys (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all keys
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string][]byte)
}
