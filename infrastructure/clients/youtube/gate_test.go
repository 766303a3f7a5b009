package youtube_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"satorii/domain/dto"
	"satorii/domain/model"
	yt "satorii/infrastructure/clients/youtube"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyServer answers every request according to the key it carries.
type keyServer struct {
	mu     sync.Mutex
	status map[string]int
	body   string
	seen   []string
	paths  []string
	query  []string
}

func (s *keyServer) handler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	s.mu.Lock()
	s.seen = append(s.seen, key)
	s.paths = append(s.paths, r.URL.Path)
	s.query = append(s.query, r.URL.RawQuery)
	code, ok := s.status[key]
	s.mu.Unlock()
	if !ok {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	if code != http.StatusOK {
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"nope"}}`, code)
		return
	}
	_, _ = w.Write([]byte(s.body))
}

const searchBody = `{
	"kind": "youtube#searchListResponse",
	"nextPageToken": "CAoQAA",
	"pageInfo": {"totalResults": 2, "resultsPerPage": 2},
	"items": [
		{"kind": "youtube#searchResult", "id": {"kind": "youtube#video", "videoId": "vid1"}, "snippet": {"title": "first"}},
		{"kind": "youtube#searchResult", "id": {"kind": "youtube#video", "videoId": "vid2"}, "snippet": {"title": "second"}}
	]
}`

func newClient(t *testing.T, srv *httptest.Server, keys ...string) *yt.Client {
	t.Helper()
	client, err := yt.NewYouTubeClient(context.Background(), &yt.Config{
		APIKeys: keys,
		BaseURL: srv.URL + "/",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestGate_RotatesPastQuotaExceededKeys(t *testing.T) {
	ks := &keyServer{
		status: map[string]int{"A": http.StatusForbidden, "B": http.StatusForbidden},
		body:   searchBody,
	}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv, "A", "B", "C")
	out := client.Search(context.Background(), &dto.YouTubeSearchRequest{Q: "lofi"})

	assert.Equal(t, model.OutcomeSuccess, out.Kind)
	assert.Equal(t, "CAoQAA", out.ContinuationToken)
	assert.Equal(t, []string{"A", "B", "C"}, ks.seen)
	assert.Equal(t, 2, client.Gate().Pool().ActiveIndex())
	assert.Equal(t, "/youtube/v3/search", ks.paths[0])

	// the next call starts from the key that worked
	out = client.Search(context.Background(), &dto.YouTubeSearchRequest{Q: "lofi"})
	assert.True(t, out.IsSuccess())
	assert.Equal(t, []string{"A", "B", "C", "C"}, ks.seen)
}

func TestGate_AllKeysExhausted(t *testing.T) {
	ks := &keyServer{
		status: map[string]int{"A": http.StatusForbidden, "B": http.StatusForbidden, "C": http.StatusForbidden},
	}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv, "A", "B", "C")
	out := client.Search(context.Background(), &dto.YouTubeSearchRequest{Q: "lofi"})

	assert.Equal(t, model.OutcomeFailure, out.Kind)
	assert.Equal(t, model.FailureQuotaExceeded, out.Reason)
	assert.Len(t, ks.seen, 3)
	assert.Equal(t, 0, client.Gate().Pool().ActiveIndex())
}

func TestGate_ServerErrorDoesNotRotate(t *testing.T) {
	ks := &keyServer{status: map[string]int{"A": http.StatusInternalServerError}, body: searchBody}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv, "A", "B")
	out := client.Search(context.Background(), &dto.YouTubeSearchRequest{Q: "lofi"})

	assert.Equal(t, model.OutcomeFailure, out.Kind)
	assert.Equal(t, model.FailureUpstream, out.Reason)
	assert.Equal(t, []string{"A"}, ks.seen)
	assert.Equal(t, 0, client.Gate().Pool().ActiveIndex())
}

func TestGate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL + "/"
	srv.Close()

	client, err := yt.NewYouTubeClient(context.Background(), &yt.Config{
		APIKeys: []string{"A", "B"},
		BaseURL: base,
		Timeout: time.Second,
	})
	require.NoError(t, err)

	out := client.Search(context.Background(), &dto.YouTubeSearchRequest{Q: "lofi"})
	assert.Equal(t, model.OutcomeFailure, out.Kind)
	assert.Equal(t, model.FailureTransport, out.Reason)
	assert.Equal(t, 0, client.Gate().Pool().ActiveIndex())
}

func TestGate_EmptyPoolMakesNoRequest(t *testing.T) {
	ks := &keyServer{body: searchBody}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv)
	out := client.Search(context.Background(), &dto.YouTubeSearchRequest{Q: "lofi"})

	assert.Equal(t, model.OutcomeFailure, out.Kind)
	assert.Equal(t, model.FailureQuotaExceeded, out.Reason)
	assert.Empty(t, ks.seen)
}

func TestGate_EmptyItemsIsEmptyOutcome(t *testing.T) {
	ks := &keyServer{body: `{"kind":"youtube#videoListResponse","items":[]}`}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv, "A")
	out := client.ListVideos(context.Background(), &dto.YouTubeVideoIDsRequest{IDs: []string{"nope"}})

	assert.Equal(t, model.OutcomeEmpty, out.Kind)
	assert.Nil(t, out.Payload)
}

func TestClient_RelatedSearchSendsRelatedToVideoID(t *testing.T) {
	ks := &keyServer{body: searchBody}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv, "A")
	out := client.Search(context.Background(), &dto.YouTubeSearchRequest{RelatedToVideoID: "seed123", MaxResults: 15})

	require.True(t, out.IsSuccess())
	require.Len(t, ks.query, 1)
	assert.Contains(t, ks.query[0], "relatedToVideoId=seed123")
	assert.Contains(t, ks.query[0], "maxResults=15")
	assert.Contains(t, ks.query[0], "type=video")
}

func TestClient_TrendingUsesMostPopularChart(t *testing.T) {
	ks := &keyServer{body: `{"items":[{"id":"abc","snippet":{"title":"hot"}}]}`}
	srv := httptest.NewServer(http.HandlerFunc(ks.handler))
	defer srv.Close()

	client := newClient(t, srv, "A")
	out := client.ListTrending(context.Background(), &dto.YouTubeTrendingRequest{RegionCode: "GB"})

	require.True(t, out.IsSuccess())
	assert.Equal(t, "/youtube/v3/videos", ks.paths[0])
	assert.Contains(t, ks.query[0], "chart=mostPopular")
	assert.Contains(t, ks.query[0], "regionCode=GB")
}
