package persistence

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"satorii/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCacheRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	storedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload, stored_at FROM api_cache WHERE cache_key=$1`)).
		WithArgs("search?q=lofi").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "stored_at"}).AddRow([]byte(`{"items":[]}`), storedAt))

	repo := NewResponseCacheRepository(db)
	entry, err := repo.Get(context.Background(), "search?q=lofi")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "search?q=lofi", entry.Key)
	assert.Equal(t, `{"items":[]}`, string(entry.Payload))
	assert.Equal(t, storedAt, entry.StoredAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseCacheRepository_GetMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload, stored_at FROM api_cache`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	entry, err := NewResponseCacheRepository(db).Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestResponseCacheRepository_GetError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload, stored_at FROM api_cache`)).
		WillReturnError(errors.New("connection reset"))

	_, err = NewResponseCacheRepository(db).Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestResponseCacheRepository_SetWithAndWithoutExpiry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	storedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	upsert := regexp.QuoteMeta(`INSERT INTO api_cache(cache_key, payload, stored_at, expires_at)`)

	mock.ExpectExec(upsert).
		WithArgs("trending?regionCode=US", []byte(`{}`), storedAt, storedAt.Add(6*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsert).
		WithArgs("channel_icon?id=UC1", []byte(`"u"`), storedAt, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewResponseCacheRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, &model.CacheEntry{Key: "trending?regionCode=US", Payload: []byte(`{}`), StoredAt: storedAt}, 6*time.Hour))
	require.NoError(t, repo.Set(ctx, &model.CacheEntry{Key: "channel_icon?id=UC1", Payload: []byte(`"u"`), StoredAt: storedAt}, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseCacheRepository_DeleteAndPurge(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM api_cache WHERE cache_key=$1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM api_cache WHERE expires_at IS NOT NULL AND expires_at < NOW()`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewResponseCacheRepository(db)
	require.NoError(t, repo.Delete(context.Background(), "k"))
	n, err := repo.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureResponseCacheSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS api_cache \(.*payload BYTEA NOT NULL`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data_type FROM information_schema.columns`)).
		WillReturnRows(sqlmock.NewRows([]string{"data_type"}).AddRow("bytea"))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS idx_api_cache_expires_at`)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureResponseCacheSchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureResponseCacheSchema_ConvertsJSONBPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS api_cache`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data_type FROM information_schema.columns`)).
		WillReturnRows(sqlmock.NewRows([]string{"data_type"}).AddRow("jsonb"))
	mock.ExpectExec(regexp.QuoteMeta(`ALTER TABLE api_cache ALTER COLUMN payload TYPE BYTEA`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS idx_api_cache_expires_at`)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureResponseCacheSchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseCacheRepository_PayloadRoundTripsVerbatim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// key order and spacing that JSONB would rewrite
	payload := []byte(`{"nextPageToken":"N",  "items":[{"id":"b"},{"id":"a"}]}`)
	storedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO api_cache(cache_key, payload, stored_at, expires_at)`)).
		WithArgs("search?q=a", payload, storedAt, storedAt.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload, stored_at FROM api_cache WHERE cache_key=$1`)).
		WithArgs("search?q=a").
		WillReturnRows(sqlmock.NewRows([]string{"payload", "stored_at"}).AddRow(payload, storedAt))

	repo := NewResponseCacheRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, &model.CacheEntry{Key: "search?q=a", Payload: payload, StoredAt: storedAt}, time.Hour))
	entry, err := repo.Get(ctx, "search?q=a")

	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, payload, entry.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseCacheRepositoryMSSQL_HashCollisionIsMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	storedAt := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT cache_key, payload, stored_at FROM dbo.api_cache WHERE key_hash=@p1`)).
		WithArgs(keyHash("search?q=a")).
		WillReturnRows(sqlmock.NewRows([]string{"cache_key", "payload", "stored_at"}).AddRow("search?q=other", `{}`, storedAt))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT cache_key, payload, stored_at FROM dbo.api_cache WHERE key_hash=@p1`)).
		WithArgs(keyHash("search?q=a")).
		WillReturnRows(sqlmock.NewRows([]string{"cache_key", "payload", "stored_at"}).AddRow("search?q=a", `{"items":[1]}`, storedAt))

	repo := NewResponseCacheRepositoryMSSQL(db)
	entry, err := repo.Get(context.Background(), "search?q=a")
	require.NoError(t, err)
	assert.Nil(t, entry)

	entry, err = repo.Get(context.Background(), "search?q=a")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, `{"items":[1]}`, string(entry.Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResponseCacheRepositoryMSSQL_SetUsesMerge(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	storedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`MERGE dbo.api_cache WITH (HOLDLOCK)`)).
		WithArgs(keyHash("videos?id=a"), "videos?id=a", `{}`, storedAt, storedAt.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewResponseCacheRepositoryMSSQL(db)
	require.NoError(t, repo.Set(context.Background(), &model.CacheEntry{Key: "videos?id=a", Payload: []byte(`{}`), StoredAt: storedAt}, time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}
