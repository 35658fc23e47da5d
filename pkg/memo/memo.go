package memo

import (
	"sync"
	"time"
)

// entry holds a cached value and the time it was stored.
type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a small TTL memoization cache. Entries expire lazily: an entry
// older than the cache TTL is treated as absent and removed on the next
// read of its key, there is no background eviction sweep. The cache does
// not de-duplicate concurrent loads for the same key; callers that miss
// simultaneously each perform their own computation and the last Set wins.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[K]entry[V]

	// now is replaceable for tests
	now func() time.Time
}

// New creates a cache whose entries are valid for ttl after insertion.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

// Get returns the value for key if an entry exists and has not exceeded the
// cache TTL. An expired entry is evicted and reported as absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set inserts or overwrites the entry for key, stamped with the current
// time. There is no per-call TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
}

// Delete removes the entry for key if present. Used to force a refresh
// before the TTL elapses, for example when a backing data source reports a
// change.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
