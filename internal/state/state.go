// Package state holds the application state shared by the TUI views and the
// pure reducers that move it from one value to the next.
package state

import (
	"time"

	"github.com/larder/larder/internal/models"
)

// Session identifies whose larder is open.
type Session struct {
	Household string
	Owner     string
}

// Active reports whether a session has been started.
func (s Session) Active() bool {
	return s.Household != ""
}

// CacheItem is a cached value and when it was stored.
type CacheItem struct {
	Value    any
	StoredAt time.Time
}

// State is the whole application state. It is a value: reducers return a
// new State and never modify the one they were given.
type State struct {
	Session   Session
	ActiveTab models.ListType
	Loading   int // Number of operations in flight

	CacheTTL time.Duration
	cache    map[string]CacheItem
}

// New returns the initial state.
func New(tab models.ListType, ttl time.Duration) State {
	return State{ActiveTab: tab, CacheTTL: ttl}
}

// IsLoading reports whether any operation is in flight.
func (s State) IsLoading() bool {
	return s.Loading > 0
}

// Cached returns the value stored under key if it is younger than the TTL.
func (s State) Cached(key string, now time.Time) (any, bool) {
	item, ok := s.cache[key]
	if !ok || s.expired(item, now) {
		return nil, false
	}
	return item.Value, true
}

// CacheLen returns the number of cached keys, including stale ones.
func (s State) CacheLen() int {
	return len(s.cache)
}

func (s State) expired(item CacheItem, now time.Time) bool {
	return s.CacheTTL > 0 && now.Sub(item.StoredAt) >= s.CacheTTL
}

// withCache returns a copy of the cache map that is safe to modify.
func (s State) withCache() map[string]CacheItem {
	m := make(map[string]CacheItem, len(s.cache)+1)
	for k, v := range s.cache {
		m[k] = v
	}
	return m
}
