package storage

import (
	"context"
	"sync"
)

// MockStorage is an in-memory Storage for tests. Error fields, when set,
// are returned by the corresponding operation to exercise the store's
// best-effort persistence path.
type MockStorage struct {
	mu     sync.RWMutex
	values map[string][]byte

	PutErr    error
	GetErr    error
	DeleteErr error
}

// NewMockStorage creates an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{values: make(map[string][]byte)}
}

func (s *MockStorage) Put(ctx context.Context, key string, value []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	s.values[key] = copied
	return nil
}

func (s *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound(key)
	}
	return value, nil
}

func (s *MockStorage) Delete(ctx context.Context, key string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok, nil
}
