package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"satorii/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoCacheDocument struct {
	Key       string     `bson:"_id"`
	Payload   []byte     `bson:"payload"`
	StoredAt  time.Time  `bson:"stored_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// ResponseCacheRepositoryMongo stores cached responses in the api_cache
// collection. A TTL index on expires_at lets the server reclaim old documents;
// documents without expires_at are kept.
type ResponseCacheRepositoryMongo struct {
	collection *mongo.Collection
}

// NewResponseCacheRepositoryMongo creates collection indexes if needed.
func NewResponseCacheRepositoryMongo(ctx context.Context, database *mongo.Database) (*ResponseCacheRepositoryMongo, error) {
	if database == nil {
		return nil, fmt.Errorf("database is required")
	}
	coll := database.Collection("api_cache")
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("create api_cache index: %w", err)
	}
	return &ResponseCacheRepositoryMongo{collection: coll}, nil
}

func (r *ResponseCacheRepositoryMongo) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	var doc mongoCacheDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("query cache entry: %w", err)
	}
	return &model.CacheEntry{Key: doc.Key, Payload: doc.Payload, StoredAt: doc.StoredAt}, nil
}

func (r *ResponseCacheRepositoryMongo) Set(ctx context.Context, entry *model.CacheEntry, ttl time.Duration) error {
	doc := mongoCacheDocument{
		Key:      entry.Key,
		Payload:  entry.Payload,
		StoredAt: entry.StoredAt.UTC(),
	}
	if ttl > 0 {
		exp := entry.StoredAt.Add(ttl).UTC()
		doc.ExpiresAt = &exp
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}

func (r *ResponseCacheRepositoryMongo) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (r *ResponseCacheRepositoryMongo) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
