package cache

import (
	"context"
	"testing"
	"time"

	"satorii/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

func TestRedisCache_Get_CacheHit(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	entry := &model.CacheEntry{
		Key:      "trending?maxResults=20&regionCode=US",
		Payload:  []byte(`{"items":[{"id":"a"}]}`),
		StoredAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, c.Set(ctx, entry, 6*time.Hour))

	got, err := c.Get(ctx, entry.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.Key, got.Key)
	assert.Equal(t, entry.Payload, got.Payload)
	assert.True(t, entry.StoredAt.Equal(got.StoredAt))
}

func TestRedisCache_Get_CacheMiss(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client)

	got, err := c.Get(context.Background(), "search?q=nothing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_HashedKeyAndTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	entry := &model.CacheEntry{Key: "search?q=lofi", Payload: []byte(`{}`), StoredAt: time.Now()}
	require.NoError(t, c.Set(ctx, entry, time.Minute))

	redisKey := c.buildKey(entry.Key)
	assert.True(t, mr.Exists(redisKey))
	assert.Contains(t, redisKey, responseCacheKeyPrefix)
	assert.Equal(t, time.Minute, mr.TTL(redisKey))

	mr.FastForward(2 * time.Minute)
	got, err := c.Get(ctx, entry.Key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_ZeroTTLPersists(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	entry := &model.CacheEntry{Key: "channel_icon?id=UC1", Payload: []byte(`"https://img"`), StoredAt: time.Now()}
	require.NoError(t, c.Set(ctx, entry, 0))

	assert.Equal(t, time.Duration(0), mr.TTL(c.buildKey(entry.Key)))
}

func TestRedisCache_KeyMismatchIsMiss(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	entry := &model.CacheEntry{Key: "search?q=a", Payload: []byte(`{}`), StoredAt: time.Now()}
	data, err := c.serialize(entry)
	require.NoError(t, err)
	require.NoError(t, mr.Set(c.buildKey("search?q=b"), string(data)))

	got, err := c.Get(ctx, "search?q=b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client)
	ctx := context.Background()

	entry := &model.CacheEntry{Key: "videos?id=a", Payload: []byte(`{}`), StoredAt: time.Now()}
	require.NoError(t, c.Set(ctx, entry, time.Hour))
	require.NoError(t, c.Delete(ctx, entry.Key))
	require.NoError(t, c.Delete(ctx, "never-stored"))

	got, err := c.Get(ctx, entry.Key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_ServerDownReturnsError(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCache(client)
	mr.Close()

	_, err := c.Get(context.Background(), "search?q=a")
	assert.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr(), "", "", 0)
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewRedisClient(context.Background(), mr.Addr(), "", "", 0)
	assert.Error(t, err)
}
