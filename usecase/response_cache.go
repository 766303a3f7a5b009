package usecase

import (
	"context"
	"fmt"
	"time"

	"satorii/domain/model"
	"satorii/domain/repository"
	"satorii/infrastructure/logger"
	"satorii/infrastructure/metrics"

	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

// CacheTTLs maps each cache category to its freshness window. A zero TTL never expires.
type CacheTTLs map[model.CacheCategory]time.Duration

// DefaultCacheTTLs are the freshness windows used when none are configured.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		model.CacheCategorySearch:      24 * time.Hour,
		model.CacheCategoryDetails:     24 * time.Hour,
		model.CacheCategoryTrending:    6 * time.Hour,
		model.CacheCategoryChannelIcon: 0,
	}
}

// CacheKey builds the cache key of an operation from the request struct that
// also drives the upstream call. Encoding sorts parameters, so equal requests
// always produce equal keys.
func CacheKey(operation string, params interface{}) (string, error) {
	if params == nil {
		return operation, nil
	}
	v, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("build cache key for %s: %w", operation, err)
	}
	if len(v) == 0 {
		return operation, nil
	}
	return operation + "?" + v.Encode(), nil
}

// ResponseCache memoizes successful upstream outcomes. Only Success outcomes
// are stored; concurrent misses on one key share a single upstream call.
type ResponseCache struct {
	store repository.IResponseCache
	ttls  CacheTTLs
	now   func() time.Time
	group singleflight.Group
}

func NewResponseCache(store repository.IResponseCache, ttls CacheTTLs) *ResponseCache {
	merged := DefaultCacheTTLs()
	for k, v := range ttls {
		merged[k] = v
	}
	return &ResponseCache{store: store, ttls: merged, now: time.Now}
}

// WithClock replaces the time source (fluent)
func (c *ResponseCache) WithClock(now func() time.Time) *ResponseCache {
	c.now = now
	return c
}

func (c *ResponseCache) TTL(category model.CacheCategory) time.Duration {
	return c.ttls[category]
}

// Lookup returns the payload stored under key when it is still fresh.
func (c *ResponseCache) Lookup(ctx context.Context, category model.CacheCategory, key string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, string(category)).Inc()
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Cache read failed, treating as miss")
		return nil, false
	}
	if entry == nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, string(category)).Inc()
		return nil, false
	}
	if !entry.Fresh(c.now(), c.TTL(category)) {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusExpired, string(category)).Inc()
		return nil, false
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, string(category)).Inc()
	return entry.Payload, true
}

// Store saves payload under key stamped with the current time.
func (c *ResponseCache) Store(ctx context.Context, category model.CacheCategory, key string, payload []byte) {
	if c.store == nil {
		return
	}
	entry := &model.CacheEntry{Key: key, Payload: payload, StoredAt: c.now()}
	if err := c.store.Set(ctx, entry, c.TTL(category)); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, string(category)).Inc()
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Cache write failed")
		return
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, string(category)).Inc()
}

// Invalidate drops key so the next read goes upstream.
func (c *ResponseCache) Invalidate(ctx context.Context, category model.CacheCategory, key string) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Delete(ctx, key); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError, string(category)).Inc()
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess, string(category)).Inc()
	return nil
}

// Fetch serves key from the cache when fresh and otherwise runs fetch,
// storing the outcome only if it is a Success.
func (c *ResponseCache) Fetch(ctx context.Context, category model.CacheCategory, key string, fetch func(ctx context.Context) model.FetchOutcome) model.FetchOutcome {
	if payload, ok := c.Lookup(ctx, category, key); ok {
		return model.Success(payload, gjson.GetBytes(payload, "nextPageToken").String())
	}

	// The shared call outlives any single caller; a caller that goes away
	// only drops its own result.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		outcome := fetch(shared)
		if outcome.IsSuccess() {
			c.Store(shared, category, key, outcome.Payload)
		}
		return outcome, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
		} else {
			metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
		}
		return res.Val.(model.FetchOutcome)
	case <-ctx.Done():
		return model.Failure(model.FailureTransport, ctx.Err())
	}
}
