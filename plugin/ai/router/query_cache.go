package router

import (
	"container/list"
	"sync"
	"time"
)

const (
	// DefaultQueryCacheSize bounds the number of remembered query vectors.
	DefaultQueryCacheSize = 512
	// DefaultQueryCacheTTL is how long a query vector stays valid.
	DefaultQueryCacheTTL = 10 * time.Minute
)

// QueryCache is an LRU of normalized query embeddings with TTL, so a repeated
// message skips the embedding call. Keys include the embedding config.
type QueryCache struct {
	capacity int
	ttl      time.Duration
	mu       sync.Mutex

	entries map[string]*queryEntry
	order   *list.List // front is most recently used
	now     func() time.Time
}

type queryEntry struct {
	key       string
	vector    []float64
	expiresAt time.Time
	element   *list.Element
}

// NewQueryCache creates a cache. Non-positive arguments take the defaults.
func NewQueryCache(capacity int, ttl time.Duration) *QueryCache {
	if capacity <= 0 {
		capacity = DefaultQueryCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultQueryCacheTTL
	}
	return &QueryCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*queryEntry),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the vector for key if present and not expired.
func (c *QueryCache) Get(key string) ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.remove(e)
		return nil, false
	}
	c.order.MoveToFront(e.element)
	return e.vector, true
}

// Set stores vector under key, evicting the least recently used entry when full.
func (c *QueryCache) Set(key string, vector []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.vector = vector
		e.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(e.element)
		return
	}

	for len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.remove(oldest.Value.(*queryEntry))
	}

	e := &queryEntry{key: key, vector: vector, expiresAt: c.now().Add(c.ttl)}
	e.element = c.order.PushFront(e)
	c.entries[key] = e
}

// Len returns the number of entries, expired ones included.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Must be called with mu held.
func (c *QueryCache) remove(e *queryEntry) {
	c.order.Remove(e.element)
	delete(c.entries, e.key)
}
