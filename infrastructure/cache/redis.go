package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"satorii/domain/model"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

const (
	// responseCacheKeyPrefix is the prefix for response cache keys in Redis.
	responseCacheKeyPrefix = "satorii:cache:"
)

// entryJSON is the JSON representation of a CacheEntry stored in Redis.
// The full logical key is kept so a hash collision reads as a miss.
type entryJSON struct {
	Key      string `json:"key"`
	Payload  []byte `json:"payload"`
	StoredAt string `json:"stored_at"`
}

// RedisCache implements IResponseCache using Redis as the backing store.
type RedisCache struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, username, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisCache creates a new Redis-backed response cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns nil, nil on cache miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	data, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	entry, err := c.deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize entry: %w", err)
	}
	if entry.Key != key {
		return nil, nil
	}
	return entry, nil
}

// Set stores the entry; a ttl of zero keeps it until deleted.
func (c *RedisCache) Set(ctx context.Context, entry *model.CacheEntry, ttl time.Duration) error {
	data, err := c.serialize(entry)
	if err != nil {
		return fmt.Errorf("serialize entry: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.buildKey(entry.Key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// buildKey hashes the logical key; query strings can be long.
func (c *RedisCache) buildKey(key string) string {
	return responseCacheKeyPrefix + strconv.FormatUint(xxhash.Sum64String(key), 16)
}

func (c *RedisCache) serialize(entry *model.CacheEntry) ([]byte, error) {
	return json.Marshal(entryJSON{
		Key:      entry.Key,
		Payload:  entry.Payload,
		StoredAt: entry.StoredAt.Format(time.RFC3339Nano),
	})
}

func (c *RedisCache) deserialize(data []byte) (*model.CacheEntry, error) {
	var v entryJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	storedAt, err := time.Parse(time.RFC3339Nano, v.StoredAt)
	if err != nil {
		return nil, fmt.Errorf("parse stored_at: %w", err)
	}
	return &model.CacheEntry{Key: v.Key, Payload: v.Payload, StoredAt: storedAt}, nil
}
