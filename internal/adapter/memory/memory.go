// Package memory implements an in-memory key-value store for development and testing.
package memory

import (
	"context"
	"sync"

	"bmitracker/internal/domain"
)

// Store implements domain.KeyValueStore in process memory.
type Store struct {
	mu   sync.Mutex
	data map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Ensure interfaces are met.
var _ domain.KeyValueStore = (*Store)(nil)

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
