// Package cache provides a small string cache used to memoize strategy
// projections, which are the most expensive computation the API serves.
package cache

import (
	"sync"
	"time"
)

// Cache is the projection cache contract. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration) error
	Delete(key string) error
}

// Memory is an in-process Cache. It is the default when no Redis address is
// configured and the implementation tests run against.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value if present and not expired.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	if !found {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		_ = m.Delete(key)
		return "", false
	}
	return entry.value, true
}

// Set stores a value; a zero ttl means no expiry.
func (m *Memory) Set(key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
