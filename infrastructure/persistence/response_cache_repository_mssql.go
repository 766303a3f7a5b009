package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"satorii/domain/model"
	"satorii/infrastructure/logger"

	"github.com/cespare/xxhash/v2"
)

// EnsureResponseCacheSchemaMSSQL creates the cache table on MSSQL if not exists.
// Index keys are limited to 900 bytes, so rows are keyed by a hash of the cache
// key and the full key is kept alongside.
func EnsureResponseCacheSchemaMSSQL(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is nil")
	}
	ddl := `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.api_cache') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.api_cache (
        key_hash NVARCHAR(16) NOT NULL PRIMARY KEY,
        cache_key NVARCHAR(MAX) NOT NULL,
        payload NVARCHAR(MAX) NOT NULL,
        stored_at DATETIMEOFFSET NOT NULL,
        expires_at DATETIMEOFFSET NULL
    );
END`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create api_cache table (mssql): %w", err)
	}
	if _, err := db.Exec(`IF NOT EXISTS (SELECT * FROM sys.indexes WHERE name = 'idx_api_cache_expires_at' AND object_id = OBJECT_ID('dbo.api_cache'))
CREATE INDEX idx_api_cache_expires_at ON dbo.api_cache(expires_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_api_cache_expires_at (mssql)")
	}
	return nil
}

// ResponseCacheRepositoryMSSQL implements IResponseCache on MSSQL
type ResponseCacheRepositoryMSSQL struct {
	db *sql.DB
}

func NewResponseCacheRepositoryMSSQL(db *sql.DB) *ResponseCacheRepositoryMSSQL {
	return &ResponseCacheRepositoryMSSQL{db: db}
}

func keyHash(key string) string {
	return strconv.FormatUint(xxhash.Sum64String(key), 16)
}

func (r *ResponseCacheRepositoryMSSQL) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT cache_key, payload, stored_at FROM dbo.api_cache WHERE key_hash=@p1`, keyHash(key))
	var storedKey, raw string
	var storedAt time.Time
	if err := row.Scan(&storedKey, &raw, &storedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if storedKey != key {
		return nil, nil
	}
	return &model.CacheEntry{Key: key, Payload: []byte(raw), StoredAt: storedAt}, nil
}

func (r *ResponseCacheRepositoryMSSQL) Set(ctx context.Context, entry *model.CacheEntry, ttl time.Duration) error {
	q := `MERGE dbo.api_cache WITH (HOLDLOCK) AS t
USING (SELECT @p1 AS key_hash) AS s ON t.key_hash = s.key_hash
WHEN MATCHED THEN UPDATE SET cache_key=@p2, payload=@p3, stored_at=@p4, expires_at=@p5
WHEN NOT MATCHED THEN INSERT (key_hash, cache_key, payload, stored_at, expires_at) VALUES (@p1, @p2, @p3, @p4, @p5);`
	_, err := r.db.ExecContext(ctx, q, keyHash(entry.Key), entry.Key, string(entry.Payload), entry.StoredAt.UTC(), expiresAt(entry.StoredAt, ttl))
	return err
}

func (r *ResponseCacheRepositoryMSSQL) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dbo.api_cache WHERE key_hash=@p1`, keyHash(key))
	return err
}

func (r *ResponseCacheRepositoryMSSQL) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dbo.api_cache WHERE expires_at IS NOT NULL AND expires_at < SYSDATETIMEOFFSET()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ResponseCacheRepositoryMSSQL) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
