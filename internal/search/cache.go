package search

import (
	"fmt"
	"sync"
	"time"

	"github.com/absolutekim/FFYYPP/internal/models"
)

// DefaultCacheCapacity bounds the number of cached result lists.
const DefaultCacheCapacity = 500

// ResultCache is a bounded LRU cache of ranked search results keyed by
// (query, limit). Eviction drops the entry with the oldest last access.
// Safe for concurrent use; entries lost to eviction races are re-computed,
// never a correctness problem.
type ResultCache struct {
	mu         sync.Mutex
	capacity   int
	entries    map[string][]models.ScoredDestination
	lastAccess map[string]int64

	clock func() int64
}

// NewResultCache creates a cache holding at most capacity entries.
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &ResultCache{
		capacity:   capacity,
		entries:    make(map[string][]models.ScoredDestination),
		lastAccess: make(map[string]int64),
		clock:      func() int64 { return time.Now().UnixNano() },
	}
}

// CacheKey builds the cache key for a query and requested result count.
func CacheKey(query string, limit int) string {
	return fmt.Sprintf("%s:%d", query, limit)
}

// Get returns the cached results for key, or nil and false on a miss.
func (c *ResultCache) Get(key string) ([]models.ScoredDestination, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	results, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.lastAccess[key] = c.clock()
	return results, true
}

// Put stores results under key, evicting the least recently used entry when
// the cache is full.
func (c *ResultCache) Put(key string, results []models.ScoredDestination) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		var oldestKey string
		oldest := int64(1<<63 - 1)
		for k, ts := range c.lastAccess {
			if ts < oldest {
				oldest = ts
				oldestKey = k
			}
		}
		delete(c.entries, oldestKey)
		delete(c.lastAccess, oldestKey)
	}

	c.entries[key] = results
	c.lastAccess[key] = c.clock()
}

// Invalidate removes a single key. Used by the force-refresh request path.
func (c *ResultCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.lastAccess, key)
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
