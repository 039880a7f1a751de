package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/renato0307/studycal/internal/ports"
)

// MemoryKVStore is a process-local KVStore. It backs --ephemeral runs and tests.
type MemoryKVStore struct {
	data map[string]string
	mu   sync.RWMutex
}

var _ ports.ClosableKVStore = (*MemoryKVStore)(nil)

// NewMemoryKVStore creates an empty in-memory store
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: make(map[string]string)}
}

// Get returns the value stored under key
func (s *MemoryKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key
func (s *MemoryKVStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove deletes key
func (s *MemoryKVStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Atomic runs fn against a staged copy and commits it only when fn succeeds
func (s *MemoryKVStore) Atomic(ctx context.Context, fn func(tx ports.KVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &MemoryKVStore{data: maps.Clone(s.data)}
	if err := fn(staged); err != nil {
		return err
	}
	s.data = staged.data
	return nil
}

// Close is a no-op
func (s *MemoryKVStore) Close() error {
	return nil
}

// Keys returns the stored keys, for diagnostics
func (s *MemoryKVStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
