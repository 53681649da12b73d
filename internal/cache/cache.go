package cache

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// CachedResponse holds a cached upstream response.
type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// entry wraps a cached response with expiry and insertion order tracking.
type entry struct {
	resp      *CachedResponse
	expiry    time.Time
	insertIdx int64
}

// ResponseCache caches upstream GET responses to prevent duplicate
// round-trips to the wealth engine. Keys are "method:path?query" so
// requests that differ only by query string never share an entry.
// Thread-safe with sync.RWMutex.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// New creates a new ResponseCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	return &ResponseCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// MakeKey builds a cache key from HTTP method, path, and raw query.
func MakeKey(method, path, rawQuery string) string {
	if rawQuery == "" {
		return method + ":" + path
	}
	return method + ":" + path + "?" + rawQuery
}

// Get returns a cached response if found and not expired.
func (c *ResponseCache) Get(key string) (*CachedResponse, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.resp, true
}

// Set stores a response with the cache's default TTL.
func (c *ResponseCache) Set(key string, resp *CachedResponse) {
	c.SetWithTTL(key, resp, c.ttl)
}

// SetWithTTL stores a response with an explicit TTL, for callers whose
// data has its own freshness tier. Evicts the oldest entry if at capacity.
func (c *ResponseCache) SetWithTTL(key string, resp *CachedResponse, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		resp:      resp,
		expiry:    time.Now().Add(ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	// If key already exists, update in place (no capacity change)
	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	// Evict oldest if at capacity
	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidatePrefix removes all entries whose key contains the given path
// prefix. Empty prefixes are rejected so a careless caller cannot wipe
// the whole cache.
func (c *ResponseCache) InvalidatePrefix(prefix string) {
	if prefix == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.Contains(key, prefix) {
			delete(c.items, key)
		}
	}
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
