package repository

import (
	"context"
	"time"

	"satorii/domain/model"
)

// IResponseCache is the key/value store behind the response cache.
// Freshness is decided by the caller from StoredAt; ttl is only a hint that lets
// a backend reclaim space (0 means keep until deleted).
type IResponseCache interface {
	// Get returns the stored entry or nil, nil when the key is absent.
	Get(ctx context.Context, key string) (*model.CacheEntry, error)
	// Set stores or replaces the entry.
	Set(ctx context.Context, entry *model.CacheEntry, ttl time.Duration) error
	// Delete removes the entry; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
