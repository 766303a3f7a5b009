package piped_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"satorii/domain/model"
	"satorii/infrastructure/clients/piped"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mirror(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/streams/abc123", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveStream_PrefersAudio(t *testing.T) {
	srv := mirror(t, http.StatusOK, `{
		"videoStreams": [{"url": "https://v.example/1", "mimeType": "video/mp4", "quality": "720p"}],
		"audioStreams": [{"url": "https://a.example/1", "mimeType": "audio/webm", "quality": "160 kbps"}]
	}`)

	client := piped.NewClient([]string{srv.URL}, time.Second)
	stream, err := client.ResolveStream(context.Background(), "abc123")

	require.NoError(t, err)
	require.NotNil(t, stream)
	assert.Equal(t, model.StreamAudio, stream.Kind)
	assert.Equal(t, "https://a.example/1", stream.URL)
	assert.Equal(t, "abc123", stream.VideoID)
	assert.Equal(t, srv.URL, stream.Instance)
}

func TestResolveStream_FallsBackToVideo(t *testing.T) {
	srv := mirror(t, http.StatusOK, `{"audioStreams": [], "videoStreams": [{"url": "https://v.example/1"}]}`)

	client := piped.NewClient([]string{srv.URL}, time.Second)
	stream, err := client.ResolveStream(context.Background(), "abc123")

	require.NoError(t, err)
	require.NotNil(t, stream)
	assert.Equal(t, model.StreamVideo, stream.Kind)
}

func TestResolveStream_TriesNextMirror(t *testing.T) {
	broken := mirror(t, http.StatusBadGateway, `upstream down`)
	garbage := mirror(t, http.StatusOK, `<html>`)
	good := mirror(t, http.StatusOK, `{"audioStreams": [{"url": "https://a.example/2"}]}`)

	client := piped.NewClient([]string{broken.URL, garbage.URL + "/", good.URL}, time.Second)
	stream, err := client.ResolveStream(context.Background(), "abc123")

	require.NoError(t, err)
	require.NotNil(t, stream)
	assert.Equal(t, "https://a.example/2", stream.URL)
	assert.Equal(t, good.URL, stream.Instance)
}

func TestResolveStream_AllMirrorsFail(t *testing.T) {
	broken := mirror(t, http.StatusInternalServerError, ``)
	empty := mirror(t, http.StatusOK, `{"audioStreams": [], "videoStreams": []}`)

	client := piped.NewClient([]string{broken.URL, empty.URL}, time.Second)
	stream, err := client.ResolveStream(context.Background(), "abc123")

	assert.NoError(t, err)
	assert.Nil(t, stream)
}

func TestResolveStream_RequiresVideoID(t *testing.T) {
	client := piped.NewClient(nil, time.Second)
	_, err := client.ResolveStream(context.Background(), "")
	assert.Error(t, err)
}
