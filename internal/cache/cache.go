// Package cache provides a TTL + LRU response cache for read-mostly
// catalogue calls.
//
// Entries are keyed by request path and hold the parsed response
// envelope. Any mutating dispatch flushes the whole cache; catalogue
// data is cheap to refetch and precise invalidation is not worth the
// bookkeeping.
package cache

import (
	"sync"
	"time"

	"github.com/fyrsmithlabs/shelfstream/internal/api"
)

type entry struct {
	envelope     *api.Envelope
	expiresAt    time.Time
	lastAccessed time.Time
}

// Cache is a thread-safe in-memory cache with TTL expiry and LRU
// eviction.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	ttl        time.Duration
	maxEntries int
}

// New creates a cache. maxEntries bounds memory; the least recently
// used entry is evicted when the bound is hit.
func New(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	return &Cache{
		entries:    make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns the cached envelope for a key if present and fresh.
func (c *Cache) Get(key string) (*api.Envelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	e.lastAccessed = time.Now()
	return e.envelope, true
}

// Set stores an envelope, evicting the least recently used entry when
// at capacity.
func (c *Cache) Set(key string, env *api.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = &entry{
		envelope:     env,
		expiresAt:    now.Add(c.ttl),
		lastAccessed: now,
	}
}

// Flush drops every entry. Called after any mutating dispatch.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the number of live entries, expired ones included until
// their next Get.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest removes the least recently accessed entry. Caller holds
// the write lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.lastAccessed.Before(oldest) {
			oldestKey = k
			oldest = e.lastAccessed
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
