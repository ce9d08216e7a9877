package cache

import (
	"sync"
	"time"

	"github.com/specforge-ai/specforge/pkg/models"
)

type memoryEntry struct {
	value     []byte
	createdAt time.Time
}

// Memory is the process-local backend. Entries and counters live and
// die with the instance; a new process starts empty.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	hits    int64
	misses  int64
}

// NewMemory creates an empty in-memory backend with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, entries: make(map[string]memoryEntry)}
}

// Get returns the value stored under key if it is present and fresh.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}
	if !Fresh(m.ttl, e.createdAt) {
		delete(m.entries, key)
		m.misses++
		return nil, false
	}
	m.hits++
	return e.value, true
}

// Set stores value under key with the current timestamp, replacing
// any previous entry. It always succeeds.
func (m *Memory) Set(key string, value []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, createdAt: time.Now()}
	return true
}

// Delete removes the entry for key, reporting whether one existed.
func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	return true
}

// Clear drops every entry. Hit and miss counters are untouched.
func (m *Memory) Clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
	return true
}

// Stats returns a snapshot of the counters and the live entry count.
func (m *Memory) Stats() models.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.CacheStats{
		Entries: int64(len(m.entries)),
		Hits:    m.hits,
		Misses:  m.misses,
	}
}
