package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"satorii/domain/model"
	"satorii/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := cache.NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := c.Get(ctx, "search?q=lofi")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, &model.CacheEntry{Key: "search?q=lofi", Payload: []byte(`{"items":[1]}`), StoredAt: now}, time.Hour))

	got, err = c.Get(ctx, "search?q=lofi")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"items":[1]}`, string(got.Payload))
	assert.Equal(t, now, got.StoredAt)

	// callers cannot mutate the stored payload
	got.Payload[0] = 'X'
	again, _ := c.Get(ctx, "search?q=lofi")
	assert.Equal(t, `{"items":[1]}`, string(again.Payload))

	require.NoError(t, c.Delete(ctx, "search?q=lofi"))
	require.NoError(t, c.Delete(ctx, "missing"))
	got, err = c.Get(ctx, "search?q=lofi")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := cache.NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = c.Set(ctx, &model.CacheEntry{Key: key, Payload: []byte(`{}`), StoredAt: time.Now()}, 0)
			_, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, c.Len())
}
