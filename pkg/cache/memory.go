package cache

import (
	"context"
	"sync"
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// DefaultMaxEntries bounds an in-memory cache built by New.
const DefaultMaxEntries = 4096

// Memory is an in-process cache. Entries expire after the TTL and the
// oldest entry is evicted once MaxEntries is reached.
type Memory struct {
	mu         sync.Mutex
	entries    *linkedhashmap.Map // key -> Entry, oldest first
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory creates an in-memory cache. maxEntries <= 0 means unbounded.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	return &Memory{
		entries:    linkedhashmap.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.entries.Get(key)
	if !ok {
		return "", false, nil
	}

	entry, _ := value.(Entry)
	if m.ttl > 0 && m.now().Sub(entry.StoredAt) >= m.ttl {
		m.entries.Remove(key)
		return "", false, nil
	}
	return entry.Output, true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-inserting moves the key to the newest position.
	m.entries.Remove(key)
	m.entries.Put(key, Entry{Output: value, StoredAt: m.now()})

	for m.maxEntries > 0 && m.entries.Size() > m.maxEntries {
		it := m.entries.Iterator()
		if !it.First() {
			break
		}
		m.entries.Remove(it.Key())
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries.Size()
}

// Close implements Cache.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries.Clear()
	return nil
}
