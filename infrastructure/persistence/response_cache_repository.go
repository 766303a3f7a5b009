package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"satorii/domain/model"
	"satorii/infrastructure/logger"
)

// EnsureResponseCacheSchema creates the response cache table if not exists
func EnsureResponseCacheSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS api_cache (
        cache_key TEXT PRIMARY KEY,
        payload BYTEA NOT NULL,
        stored_at TIMESTAMPTZ NOT NULL,
        expires_at TIMESTAMPTZ NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create api_cache table: %w", err)
	}

	// Tables created before payloads were stored verbatim used JSONB.
	var dataType string
	err := db.QueryRow(`SELECT data_type FROM information_schema.columns WHERE table_name='api_cache' AND column_name='payload'`).Scan(&dataType)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("inspect api_cache.payload: %w", err)
	}
	if dataType == "jsonb" {
		if _, err := db.Exec(`ALTER TABLE api_cache ALTER COLUMN payload TYPE BYTEA USING convert_to(payload::text, 'UTF8')`); err != nil {
			return fmt.Errorf("convert api_cache.payload to bytea: %w", err)
		}
	}

	// Helpful index to purge expired rows
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_api_cache_expires_at ON api_cache(expires_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_api_cache_expires_at")
	}
	return nil
}

// ResponseCacheRepository stores cached upstream responses in Postgres.
// Payloads are kept as BYTEA so a hit returns the exact bytes stored.
type ResponseCacheRepository struct{ db *sql.DB }

func NewResponseCacheRepository(db *sql.DB) *ResponseCacheRepository {
	return &ResponseCacheRepository{db: db}
}

// Get returns the row for key, or nil, nil when absent. Freshness is decided
// by the caller from StoredAt.
func (r *ResponseCacheRepository) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload, stored_at FROM api_cache WHERE cache_key=$1`, key)
	var raw []byte
	var storedAt time.Time
	if err := row.Scan(&raw, &storedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &model.CacheEntry{Key: key, Payload: raw, StoredAt: storedAt}, nil
}

// Set upserts the row. expires_at is NULL for entries that never expire.
func (r *ResponseCacheRepository) Set(ctx context.Context, entry *model.CacheEntry, ttl time.Duration) error {
	q := `INSERT INTO api_cache(cache_key, payload, stored_at, expires_at)
          VALUES ($1,$2,$3,$4)
          ON CONFLICT (cache_key) DO UPDATE SET payload=EXCLUDED.payload, stored_at=EXCLUDED.stored_at, expires_at=EXCLUDED.expires_at`
	_, err := r.db.ExecContext(ctx, q, entry.Key, entry.Payload, entry.StoredAt.UTC(), expiresAt(entry.StoredAt, ttl))
	return err
}

func (r *ResponseCacheRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM api_cache WHERE cache_key=$1`, key)
	return err
}

// PurgeExpired removes rows whose expiry has passed and returns how many went.
func (r *ResponseCacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM api_cache WHERE expires_at IS NOT NULL AND expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ResponseCacheRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// expiresAt is the reclaim time for a row, or nil when the entry never expires.
func expiresAt(storedAt time.Time, ttl time.Duration) interface{} {
	if ttl <= 0 {
		return nil
	}
	return storedAt.Add(ttl).UTC()
}
