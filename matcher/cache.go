package matcher

import (
	"time"

	"github.com/fieldsafe/validator/cache"
)

// Key identifies a compiled matcher: the anchored pattern text plus
// its execution budget. Two calls with the same key always observe the
// same compiled instance.
type Key struct {
	Pattern string
	Timeout time.Duration
}

// Cache maps keys to compiled bounded matchers. Builds are lazy;
// concurrent misses for one key may compile twice but store once.
// Compilation failures are returned, not stored, so malformed patterns
// surface on every call rather than poisoning an entry.
type Cache struct {
	lru *cache.Cache[Key, *Bounded]
}

// NewCache creates a matcher cache bounded to capacity entries.
// Declared fields give a small, fixed key population in practice; the
// LRU bound only matters if patterns ever arrive from a hostile
// caller.
func NewCache(capacity int) *Cache {
	return &Cache{
		lru: cache.New[Key, *Bounded](capacity),
	}
}

// GetOrBuild returns the cached matcher for (pattern, timeout),
// compiling and storing it on first use.
func (c *Cache) GetOrBuild(pattern string, timeout time.Duration) (*Bounded, error) {
	key := Key{Pattern: pattern, Timeout: timeout}
	return c.lru.GetOrCompute(key, func() (*Bounded, error) {
		return Compile(pattern, timeout)
	})
}

// Stats exposes the underlying cache counters.
func (c *Cache) Stats() cache.Stats {
	return c.lru.Stats()
}

// Len returns the number of cached matchers.
func (c *Cache) Len() int {
	return c.lru.Len()
}
