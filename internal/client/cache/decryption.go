// Package cache holds the session-scoped decryption result cache.
//
// Unlike the signature cache this one is deliberately not durable: with a
// cached signature, re-decrypting is cheap, so entries only need to live for
// the current session. What the cache buys is skipping redundant AEAD work
// (and, on a cold signature cache, a wallet prompt) when the dashboard
// re-renders the same items.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/timex"
)

const (
	// DefaultTTL is how long a decrypted payload stays usable.
	DefaultTTL = time.Hour
	// DefaultMaxEntries bounds memory use; eviction is oldest-insert-first.
	DefaultMaxEntries = 100
)

type entry struct {
	payload   models.ItemPayload
	owner     string
	createdAt time.Time
}

// DecryptionCache maps (owner, itemId) to a decrypted ItemPayload with TTL
// and a capacity bound. Eviction uses the insertion timestamp, not access
// time: recompute cost is low since the signature is likely still cached, so
// approximate LRU is enough.
//
// The UI layer is single-threaded, but bulk decrypt populates the cache from
// the same goroutine while other lookups may interleave logically; a mutex
// keeps the map safe regardless of how callers schedule work.
type DecryptionCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	clock      timex.Clock
}

// New returns a cache with the default TTL and capacity.
func New() *DecryptionCache {
	return NewWithOptions(DefaultTTL, DefaultMaxEntries, timex.RealClock{})
}

// NewWithOptions lets tests control TTL, capacity and time.
func NewWithOptions(ttl time.Duration, maxEntries int, clock timex.Clock) *DecryptionCache {
	return &DecryptionCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
	}
}

func key(owner, itemID string) string {
	return strings.ToLower(owner) + "-" + strings.ToLower(itemID)
}

// Get returns the cached payload for (owner, itemID), or false if absent or
// expired. Expired entries are removed on access.
func (c *DecryptionCache) Get(owner, itemID string) (models.ItemPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(owner, itemID)
	e, ok := c.entries[k]
	if !ok {
		return models.ItemPayload{}, false
	}
	if c.clock.Now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, k)
		return models.ItemPayload{}, false
	}
	return e.payload, true
}

// Set stores a decrypted payload. When the cache is full and the key is new,
// the single oldest entry is evicted first.
func (c *DecryptionCache) Set(owner, itemID string, payload models.ItemPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(owner, itemID)
	if _, exists := c.entries[k]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[k] = entry{payload: payload, owner: strings.ToLower(owner), createdAt: c.clock.Now()}
}

// ClearForOwner drops every entry belonging to owner. Used when the active
// account changes.
func (c *DecryptionCache) ClearForOwner(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(owner)
	for k, e := range c.entries {
		if e.owner == lower {
			delete(c.entries, k)
		}
	}
}

// ClearAll wipes the cache. Used on wallet lock/disconnect.
func (c *DecryptionCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the current number of entries.
func (c *DecryptionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *DecryptionCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.createdAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.createdAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
