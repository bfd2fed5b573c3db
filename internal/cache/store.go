package cache

import (
	"sync"
	"time"
)

// Namespace is a category of cached entity with its own expiry policy.
type Namespace string

const (
	NamespaceTeam   Namespace = "TEAM_DATA"
	NamespacePlayer Namespace = "PLAYER_DATA"
	NamespaceMatch  Namespace = "MATCH_DATA"
	NamespaceHeroes Namespace = "HERO_LIST"
	NamespaceItems  Namespace = "ITEM_LIST"
)

// Key builds the composite cache key used by both the store and the
// in-flight deduplicator, so one coalesced fetch maps to one entry.
func Key(ns Namespace, id string) string {
	return string(ns) + ":" + id
}

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Store is a namespaced TTL cache. Expiry is checked lazily on read and
// expired entries are kept in place so callers may fall back to stale data
// via GetStale. There is no sweeper and no size bound; the key space is
// bounded by the set of tracked teams and players.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttls    map[Namespace]time.Duration
	now     func() time.Time
}

func New(ttls map[Namespace]time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttls:    ttls,
		now:     time.Now,
	}
}

// TTL returns the configured TTL for a namespace, zero when unknown.
func (s *Store) TTL(ns Namespace) time.Duration {
	return s.ttls[ns]
}

// Get returns the fresh value for (ns, id). An expired entry is a miss; the
// entry itself is left in place. The read has no other side effect.
func (s *Store) Get(ns Namespace, id string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[Key(ns, id)]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		return nil, false
	}
	return e.value, true
}

// GetStale returns the value for (ns, id) regardless of expiry, reporting
// whether the entry is past its TTL. Used for the opt-in stale fallback after
// a failed forced re-fetch.
func (s *Store) GetStale(ns Namespace, id string) (value any, stale bool, ok bool) {
	s.mu.RLock()
	e, ok := s.entries[Key(ns, id)]
	s.mu.RUnlock()
	if !ok {
		return nil, false, false
	}
	return e.value, s.expired(e), true
}

// Set stores value under the namespace's TTL, overwriting unconditionally.
func (s *Store) Set(ns Namespace, id string, value any) {
	e := entry{
		value:    value,
		storedAt: s.now(),
		ttl:      s.ttls[ns],
	}
	s.mu.Lock()
	s.entries[Key(ns, id)] = e
	s.mu.Unlock()
}

func (s *Store) Invalidate(ns Namespace, id string) {
	s.mu.Lock()
	delete(s.entries, Key(ns, id))
	s.mu.Unlock()
}

func (s *Store) expired(e entry) bool {
	return e.ttl > 0 && s.now().Sub(e.storedAt) > e.ttl
}
