package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/ZaguanLabs/quotelai/store"
)

// StorageKey is the store key holding the serialized cache map.
const StorageKey = "translationCache"

// errCorruptRecord marks a cache record that exists but cannot be decoded.
var errCorruptRecord = errors.New("unreadable cache record")

// StoreCache keeps the whole cache map as one JSON record in a KV store.
// Every access reads the record; every write replaces it.
// An unreadable record counts as empty: reads miss and the next write replaces it.
type StoreCache struct {
	kv       store.KV
	capacity int
	timeout  time.Duration
	logger   lgr.L
	mu       sync.Mutex
}

// StoreCacheOption configures a StoreCache.
type StoreCacheOption func(*StoreCache)

// WithLogger sets the logger used to report discarded records.
func WithLogger(l lgr.L) StoreCacheOption {
	return func(c *StoreCache) {
		c.logger = l
	}
}

// NewStoreCache creates a persistent cache over kv holding at most capacity entries.
// If capacity is 0 or negative, MaxEntries is used.
func NewStoreCache(kv store.KV, capacity int, opts ...StoreCacheOption) *StoreCache {
	if capacity <= 0 {
		capacity = MaxEntries
	}
	c := &StoreCache{kv: kv, capacity: capacity, timeout: 5 * time.Second, logger: lgr.NoOp}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached translation. Backend failures are reported as misses.
func (c *StoreCache) Get(key string) (string, bool) {
	entries, err := c.load()
	if err != nil {
		return "", false
	}
	entry, ok := entries[key]
	if !ok {
		return "", false
	}
	return entry.Translation, true
}

// Put stores a translation and rewrites the record.
func (c *StoreCache) Put(key string, translation string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.loadForWrite()
	if err != nil {
		return err
	}

	var last int64
	for _, e := range entries {
		if e.Timestamp > last {
			last = e.Timestamp
		}
	}
	entries[key] = Entry{Translation: translation, Timestamp: nextStamp(time.Now().UnixMilli(), last)}
	evict(entries, c.capacity)
	return c.save(entries)
}

// Restore merges entries keeping their timestamps and rewrites the record.
func (c *StoreCache) Restore(in map[string]Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.loadForWrite()
	if err != nil {
		return err
	}
	for k, e := range in {
		entries[k] = e
	}
	evict(entries, c.capacity)
	return c.save(entries)
}

// Snapshot returns all stored entries.
func (c *StoreCache) Snapshot() (map[string]Entry, error) {
	return c.load()
}

// Len returns the number of stored entries, or 0 if the record cannot be read.
func (c *StoreCache) Len() int {
	entries, err := c.load()
	if err != nil {
		return 0
	}
	return len(entries)
}

// Clear replaces the record with an empty map.
func (c *StoreCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(map[string]Entry{})
}

func (c *StoreCache) load() (map[string]Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	data, err := c.kv.Get(ctx, StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		return make(map[string]Entry), nil
	}
	if err != nil {
		return nil, err
	}

	entries := make(map[string]Entry)
	if data == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptRecord, err)
	}
	return entries, nil
}

// loadForWrite is load with an unreadable record replaced by an empty map.
func (c *StoreCache) loadForWrite() (map[string]Entry, error) {
	entries, err := c.load()
	if errors.Is(err, errCorruptRecord) {
		c.logger.Logf("[WARN] discarding %s record: %v", StorageKey, err)
		return make(map[string]Entry), nil
	}
	return entries, err
}

func (c *StoreCache) save(entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding cache record: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.kv.Set(ctx, StorageKey, string(data))
}

var (
	_ TranslationCache = (*StoreCache)(nil)
	_ Snapshotter      = (*StoreCache)(nil)
	_ Restorer         = (*StoreCache)(nil)
)
