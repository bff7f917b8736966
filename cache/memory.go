package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process PropertyCache for single instance deployments
// without Redis.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	gen     int64
	entries map[string]memoryEntry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, entries: map[string]memoryEntry{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, m.gen, false
	}
	if m.ttl > 0 && time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, m.gen, false
	}
	return e.value, m.gen, true
}

func (m *Memory) Set(_ context.Context, key string, gen int64, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.entries[key] = memoryEntry{value: value, expires: time.Now().Add(m.ttl)}
}

func (m *Memory) Invalidate(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.entries = map[string]memoryEntry{}
}

// Generation counts the invalidations so far.
func (m *Memory) Generation() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}
