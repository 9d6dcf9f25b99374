// Package cache is a concurrency-safe in-memory key/value cache with TTLs.
//
// Usage:
//
//	c := cache.New[[]domain.Stop](5*time.Minute, 10*time.Minute)
//	defer c.Stop()
//	c.Set("stops:paldi", stops)
//	if v, ok := c.Get("stops:paldi"); ok {
//		return v
//	}
package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt int64 // unix nanos; 0 never expires
}

func (it item[V]) expired(now int64) bool { return it.expiresAt > 0 && now > it.expiresAt }

// Cache stores values of type V with an expiration each.
type Cache[V any] struct {
	mu         sync.RWMutex
	items      map[string]item[V]
	defaultTTL time.Duration
	now        func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// New returns a cache whose entries live for defaultTTL. When
// cleanupInterval is positive a goroutine evicts expired entries at that
// interval until Stop is called.
func New[V any](defaultTTL, cleanupInterval time.Duration) *Cache[V] {
	c := &Cache[V]{
		items:      make(map[string]item[V]),
		defaultTTL: defaultTTL,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.cleanupLoop(cleanupInterval)
	}
	return c
}

// Set stores value under key. With a non-positive default TTL the entry
// never expires.
func (c *Cache[V]) Set(key string, value V) {
	var expiresAt int64
	if c.defaultTTL > 0 {
		expiresAt = c.now().Add(c.defaultTTL).UnixNano()
	}
	c.mu.Lock()
	c.items[key] = item[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Get returns the live value under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if it.expired(c.now().UnixNano()) {
		c.Delete(key)
		return zero, false
	}
	return it.value, true
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear removes everything.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.items = make(map[string]item[V])
	c.mu.Unlock()
}

// deleteExpired evicts expired entries.
func (c *Cache[V]) deleteExpired() {
	now := c.now().UnixNano()
	c.mu.Lock()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
		}
	}
	c.mu.Unlock()
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}
