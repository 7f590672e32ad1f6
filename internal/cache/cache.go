package cache

import (
	"sync"
	"time"
)

// Cache is a generic in-memory cache with a fixed time-to-live.
// Expired entries are invisible to Get and are removed by Sweep.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*cacheItem[V]
	ttl   time.Duration
	now   func() time.Time
}

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

// New creates a cache whose entries live for ttl.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*cacheItem[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || c.now().After(item.expiration) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{
		value:      value,
		expiration: c.now().Add(c.ttl),
	}
}

// Sweep deletes expired entries and returns how many were removed.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
