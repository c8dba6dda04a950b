// Package cache provides the TTL-bounded in-memory result store.
package cache

import (
	"sync"
	"time"

	"github.com/seolens/indexcheck/internal/validator"
)

// DefaultTTL bounds how long a computed result is reused before the URL is
// fetched again. Failures are cached with the same TTL as successes.
const DefaultTTL = 30 * time.Minute

type entry struct {
	result  validator.Result
	expires time.Time
}

// Cache maps a normalized URL to its last computed result. Entries are
// immutable once written; a stale entry is treated as absent. There is no
// size bound: the working set is one batch request's URL list.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   validator.Clock
	entries map[string]entry
}

// New constructs a Cache with the given TTL and clock.
func New(ttl time.Duration, clock validator.Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns the live entry for a URL, if any.
func (c *Cache) Get(url string) (validator.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[url]
	if !ok || !c.clock.Now().Before(e.expires) {
		return validator.Result{}, false
	}
	return e.result, true
}

// Put stores a result with a fresh TTL starting now, sweeping any expired
// entries while the write lock is held.
func (c *Cache) Put(url string, result validator.Result) {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
	c.entries[url] = entry{result: result, expires: now.Add(c.ttl)}
}

// Len reports the number of stored entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
