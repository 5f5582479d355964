package tmdb

import (
	"sync"
	"time"
)

type cacheEntry struct {
	results []Candidate
	expires time.Time
}

// cache memoizes search responses keyed by the request path and query.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *cache) get(key string) ([]Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.results, true
}

func (c *cache) set(key string, results []Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		results: results,
		expires: time.Now().Add(c.ttl),
	}
}
