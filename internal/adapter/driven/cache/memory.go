// Package cache provides SessionCache adapters: an in-memory store used by
// default and in tests, and a Redis-backed store for deployments that want
// the cache to survive restarts.
package cache

import (
	"context"
	"sync"

	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionCache = (*Memory)(nil)

// Memory is a process-local SessionCache. Values are copied on the way in and
// out so cached snapshots stay immutable.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, false
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Set stores value under key, replacing any previous entry.
func (m *Memory) Set(_ context.Context, key string, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = stored
}

// Delete removes the entry for key, if any.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
