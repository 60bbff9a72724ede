// Package cache provides a generic, thread-safe LRU cache with metrics.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe LRU cache with built-in metrics.
// Values are built lazily via GetOrCompute and converge to a single
// stored instance per key even under concurrent misses.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]*entry[K, V]
	order    *list.List
	capacity int

	// Metrics (lock-free using atomics)
	hits   atomic.Uint64
	misses atomic.Uint64
	evicts atomic.Uint64
	sets   atomic.Uint64
}

// entry holds a cached value and its position in the LRU list.
type entry[K comparable, V any] struct {
	key     K
	value   V
	element *list.Element
}

// New creates a Cache with the specified capacity.
// When the cache is full, the least recently used item is evicted.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 128
	}
	return &Cache[K, V]{
		items:    make(map[K]*entry[K, V], capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get retrieves a value from the cache.
// Accessing an item moves it to the front of the LRU list.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	c.hits.Add(1)

	c.mu.Lock()
	c.order.MoveToFront(e.element)
	c.mu.Unlock()

	return e.value, true
}

// Set adds or updates a value in the cache.
// If the cache is at capacity, the least recently used item is evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.sets.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeLocked(key, value)
}

// GetOrCompute returns the value for key, building it with fn on a
// miss. A failed build is not stored, so a later call may retry.
// Concurrent misses for the same key may each run fn, but exactly one
// computed value ends up stored and all callers that observe the cache
// afterwards see that single instance.
func (c *Cache[K, V]) GetOrCompute(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring the write lock
	if e, ok := c.items[key]; ok {
		c.order.MoveToFront(e.element)
		return e.value, nil
	}

	value, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	c.storeLocked(key, value)
	c.sets.Add(1)
	return value, nil
}

// storeLocked inserts or updates an entry. Must be called with mu held.
func (c *Cache[K, V]) storeLocked(key K, value V) {
	if e, ok := c.items[key]; ok {
		e.value = value
		c.order.MoveToFront(e.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldest()
	}

	element := c.order.PushFront(key)
	c.items[key] = &entry[K, V]{
		key:     key,
		value:   value,
		element: element,
	}
}

// evictOldest removes the least recently used item.
// Must be called with mu held.
func (c *Cache[K, V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}

	key := oldest.Value.(K)
	delete(c.items, key)
	c.order.Remove(oldest)
	c.evicts.Add(1)
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all items from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*entry[K, V], c.capacity)
	c.order.Init()
}

// Stats holds cache statistics.
type Stats struct {
	Size     int
	Capacity int
	Hits     uint64
	Misses   uint64
	Evicts   uint64
	Sets     uint64
	HitRate  float64
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Size:     size,
		Capacity: c.capacity,
		Hits:     hits,
		Misses:   misses,
		Evicts:   c.evicts.Load(),
		Sets:     c.sets.Load(),
		HitRate:  hitRate,
	}
}
