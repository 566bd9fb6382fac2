package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by KV.Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// KV is the minimal persistence surface the game core depends on.
// Implementations in this package: Store (sqlite), GData (per-user app
// data directory) and Memory. Callers that can run without persistence
// treat any error as "no value".
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Memory is an in-process KV used in tests and as the degraded fallback
// when no durable store can be opened.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get returns the stored value or ErrNotFound.
func (s *Memory) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores the value under key.
func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
