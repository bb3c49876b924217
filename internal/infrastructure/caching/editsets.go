// Package caching provides in-memory caches for hot render-path data.
package caching

import (
	"sync"
	"time"

	"github.com/zrasti/malleable-go/internal/domain/entities/page"
)

type cachedEditSet struct {
	edits       page.EditSet
	lastUpdated time.Time
}

// EditSetStore caches edit-sets fetched from the snapshot store so repeated
// preview renders of the same snapshot don't re-hit durable storage.
// Snapshots are immutable once written, so entries never go stale; the TTL
// only bounds memory.
type EditSetStore struct {
	entries map[string]*cachedEditSet
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewEditSetStore creates an edit-set cache with the given entry TTL.
func NewEditSetStore(ttl time.Duration) *EditSetStore {
	return &EditSetStore{
		entries: make(map[string]*cachedEditSet),
		ttl:     ttl,
	}
}

// Get retrieves a cached edit-set by snapshot id.
func (s *EditSetStore) Get(snapshotID string) (page.EditSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[snapshotID]
	if !exists {
		return nil, false
	}
	if time.Since(entry.lastUpdated) > s.ttl {
		return nil, false
	}
	return entry.edits, true
}

// Set stores an edit-set under its snapshot id.
func (s *EditSetStore) Set(snapshotID string, edits page.EditSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[snapshotID] = &cachedEditSet{
		edits:       edits,
		lastUpdated: time.Now().UTC(),
	}
}

// PurgeExpired removes expired entries and reports how many were dropped.
func (s *EditSetStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, entry := range s.entries {
		if time.Since(entry.lastUpdated) > s.ttl {
			delete(s.entries, id)
			purged++
		}
	}
	return purged
}

// Len reports the number of cached entries, expired or not.
func (s *EditSetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
