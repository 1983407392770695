package selectors

import (
	"sync"

	"github.com/vuet/vuet-client/pkg/store"
)

// Memo caches derived values for one snapshot version. The first Get against
// a newer snapshot drops every cached entry.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	version uint64
	valid   bool
	entries map[K]V
}

// Get returns the cached value for key under snap, computing it on a miss.
func (m *Memo[K, V]) Get(snap *store.Snapshot, key K, compute func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.valid || m.version != snap.Version {
		m.version = snap.Version
		m.valid = true
		m.entries = make(map[K]V)
	}
	if v, ok := m.entries[key]; ok {
		return v
	}
	v := compute()
	m.entries[key] = v
	return v
}

// Len returns the number of cached entries for the current version.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
