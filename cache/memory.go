package cache

import (
	"maps"
	"sync"
	"time"
)

// BoundedCache is a thread-safe in-memory cache capped at a fixed number of entries.
type BoundedCache struct {
	entries  map[string]Entry
	capacity int
	last     int64
	mu       sync.RWMutex
}

// NewBoundedCache creates a cache holding at most capacity entries.
// If capacity is 0 or negative, MaxEntries is used.
func NewBoundedCache(capacity int) *BoundedCache {
	if capacity <= 0 {
		capacity = MaxEntries
	}
	return &BoundedCache{
		entries:  make(map[string]Entry),
		capacity: capacity,
	}
}

// Get retrieves a translation from the cache.
func (c *BoundedCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	return entry.Translation, true
}

// Put stores a translation stamped with the current time and evicts past capacity.
func (c *BoundedCache) Put(key string, translation string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = nextStamp(time.Now().UnixMilli(), c.last)
	c.entries[key] = Entry{Translation: translation, Timestamp: c.last}
	evict(c.entries, c.capacity)
	return nil
}

// Restore merges entries keeping their timestamps, then evicts past capacity.
func (c *BoundedCache) Restore(entries map[string]Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range entries {
		c.entries[k] = e
		if e.Timestamp > c.last {
			c.last = e.Timestamp
		}
	}
	evict(c.entries, c.capacity)
	return nil
}

// Snapshot returns a copy of all entries.
func (c *BoundedCache) Snapshot() (map[string]Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.entries), nil
}

// Len returns the number of entries in the cache.
func (c *BoundedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *BoundedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

var (
	_ TranslationCache = (*BoundedCache)(nil)
	_ Snapshotter      = (*BoundedCache)(nil)
	_ Restorer         = (*BoundedCache)(nil)
)
