package suggest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"
)

const maxBodySize = 512 * 1024

type params struct {
	Client string `url:"client"`
	DS     string `url:"ds"`
	Q      string `url:"q"`
}

// Client fetches search autocomplete suggestions from the public suggestion
// endpoint, which answers with a JSONP wrapped array.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Suggest(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}

	v, err := query.Values(params{Client: "youtube", DS: "yt", Q: q})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching suggestions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from suggestion service", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return ParseJSONP(raw)
}

// ParseJSONP extracts the suggestion texts from a body such as
//
//	window.google.ac.h(["lofi",[["lofi hip hop",0,[512]],["lofi girl",0]],{"k":1}])
//
// Entries may be plain strings or arrays whose first element is the text.
// A body without a wrapper is parsed as-is.
func ParseJSONP(raw []byte) ([]string, error) {
	body := raw
	start := bytes.IndexByte(raw, '(')
	end := bytes.LastIndexByte(raw, ')')
	if start >= 0 && end > start {
		body = raw[start+1 : end]
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed suggestion payload")
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, errors.New("suggestion payload is not an array")
	}

	out := []string{}
	root.Get("1").ForEach(func(_, entry gjson.Result) bool {
		text := entry.String()
		if entry.IsArray() {
			text = entry.Get("0").String()
		}
		if text != "" {
			out = append(out, text)
		}
		return true
	})
	return out, nil
}
