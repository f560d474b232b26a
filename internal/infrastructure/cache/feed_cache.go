package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// defaultCleanupInterval bounds how long expired entries linger
const defaultCleanupInterval = 30 * time.Second

// FeedCache is an in-memory TTL cache for fetched feed results. It backs
// the live-feed revalidation window: repeated fetches inside the TTL return
// the cached item set instead of hitting the upstream again.
type FeedCache[T any] struct {
	entries sync.Map // map[string]*cacheEntry[T]
	ttl     time.Duration
	stopCh  chan struct{}
	stopped atomic.Bool

	// Stats for monitoring
	hits   atomic.Int64
	misses atomic.Int64
}

// cacheEntry wraps a cached value with its expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewFeedCache creates a feed cache with the given revalidation window
func NewFeedCache[T any](ttl time.Duration) *FeedCache[T] {
	c := &FeedCache[T]{
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get returns the cached value for a key if it is still fresh
func (c *FeedCache[T]) Get(key string) (T, bool) {
	var zero T
	raw, ok := c.entries.Load(key)
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	entry := raw.(*cacheEntry[T])
	if entry.isExpired() {
		c.entries.Delete(key)
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return entry.value, true
}

// Set stores a value under a key for the cache's TTL
func (c *FeedCache[T]) Set(key string, value T) {
	c.entries.Store(key, &cacheEntry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Invalidate removes a key immediately
func (c *FeedCache[T]) Invalidate(key string) {
	c.entries.Delete(key)
}

// Stats returns hit/miss counters
func (c *FeedCache[T]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Stop terminates the background cleanup goroutine
func (c *FeedCache[T]) Stop() {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
}

func (c *FeedCache[T]) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, raw any) bool {
				if raw.(*cacheEntry[T]).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
