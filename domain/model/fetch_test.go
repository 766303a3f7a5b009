package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"satorii/domain/model"
)

func TestCacheEntry_Fresh(t *testing.T) {
	storedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entry := &model.CacheEntry{Key: "k", Payload: []byte("{}"), StoredAt: storedAt}
	ttl := 6 * time.Hour

	assert.True(t, entry.Fresh(storedAt, ttl))
	assert.True(t, entry.Fresh(storedAt.Add(ttl), ttl), "age equal to ttl is still fresh")
	assert.False(t, entry.Fresh(storedAt.Add(ttl+time.Second), ttl))
	assert.True(t, entry.Fresh(storedAt.Add(365*24*time.Hour), 0), "zero ttl never expires")

	var missing *model.CacheEntry
	assert.False(t, missing.Fresh(storedAt, ttl))
}

func TestThumbnails_Best(t *testing.T) {
	var empty model.Thumbnails
	assert.Nil(t, empty.Best())

	th := model.Thumbnails{
		Default: &model.Thumbnail{URL: "d", Width: 120, Height: 90},
		High:    &model.Thumbnail{URL: "h", Width: 480, Height: 360},
	}
	assert.Equal(t, "h", th.Best().URL)

	th.Maxres = &model.Thumbnail{URL: "m", Width: 1280, Height: 720}
	assert.Equal(t, "m", th.Best().URL)
}

func TestFetchOutcome_Describe(t *testing.T) {
	assert.Equal(t, "ok", model.Success([]byte("{}"), "").Describe())
	assert.Equal(t, "no results", model.Empty().Describe())
	assert.Equal(t, "upstream_error: boom", model.Failure(model.FailureUpstream, errors.New("boom")).Describe())
	assert.Equal(t, "quota_exceeded", model.Failure(model.FailureQuotaExceeded, nil).Describe())
}
