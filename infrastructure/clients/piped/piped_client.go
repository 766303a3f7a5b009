package piped

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"satorii/domain/model"
	"satorii/infrastructure/logger"
	"satorii/infrastructure/metrics"

	"github.com/tidwall/gjson"
)

const maxBodySize = 4 * 1024 * 1024

var errNoStreams = errors.New("no playable streams")

// Client resolves playable stream URLs from a list of Piped mirrors.
// Mirrors are tried in order and the first one that yields a stream wins.
type Client struct {
	instances  []string
	httpClient *http.Client
}

func NewClient(instances []string, timeout time.Duration) *Client {
	cleaned := make([]string, 0, len(instances))
	for _, in := range instances {
		in = strings.TrimRight(strings.TrimSpace(in), "/")
		if in != "" {
			cleaned = append(cleaned, in)
		}
	}
	return &Client{
		instances:  cleaned,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ResolveStream returns nil, nil when every mirror failed or had nothing playable.
// Audio streams are preferred over video streams.
func (c *Client) ResolveStream(ctx context.Context, videoID string) (*model.Stream, error) {
	if videoID == "" {
		return nil, errors.New("video id is required")
	}
	log := logger.GetLogger().WithField("videoId", videoID)

	for _, instance := range c.instances {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stream, err := c.fetch(ctx, instance, videoID)
		if err != nil {
			metrics.StreamResolutionsTotal.WithLabelValues(instance, "error").Inc()
			log.WithField("instance", instance).WithField("error", err).Warn("Piped instance failed")
			continue
		}
		metrics.StreamResolutionsTotal.WithLabelValues(instance, string(stream.Kind)).Inc()
		return stream, nil
	}

	metrics.StreamResolutionsTotal.WithLabelValues("none", "error").Inc()
	log.Warn("No Piped instance could resolve a stream")
	return nil, nil
}

func (c *Client) fetch(ctx context.Context, instance, videoID string) (*model.Stream, error) {
	endpoint := instance + "/streams/" + url.PathEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching streams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, instance)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid JSON from mirror")
	}

	stream := pickStream(raw)
	if stream == nil {
		return nil, errNoStreams
	}
	stream.VideoID = videoID
	stream.Instance = instance
	return stream, nil
}

func pickStream(raw []byte) *model.Stream {
	for _, candidate := range []struct {
		path string
		kind model.StreamKind
	}{
		{"audioStreams", model.StreamAudio},
		{"videoStreams", model.StreamVideo},
	} {
		var found *model.Stream
		gjson.GetBytes(raw, candidate.path).ForEach(func(_, s gjson.Result) bool {
			u := s.Get("url").String()
			if u == "" {
				return true
			}
			found = &model.Stream{
				URL:      u,
				Kind:     candidate.kind,
				MimeType: s.Get("mimeType").String(),
				Quality:  s.Get("quality").String(),
			}
			return false
		})
		if found != nil {
			return found
		}
	}
	return nil
}
