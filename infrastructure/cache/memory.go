package cache

import (
	"context"
	"sync"
	"time"

	"satorii/domain/model"
)

// MemoryCache keeps entries in process. Expiry is left to the caller, which
// decides freshness from StoredAt; the ttl hint is ignored.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]model.CacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]model.CacheEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	entry.Payload = append([]byte(nil), entry.Payload...)
	return &entry, nil
}

func (c *MemoryCache) Set(_ context.Context, entry *model.CacheEntry, _ time.Duration) error {
	stored := *entry
	stored.Payload = append([]byte(nil), entry.Payload...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Key] = stored
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) Ping(context.Context) error { return nil }
