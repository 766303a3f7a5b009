package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"satorii/domain/model"
	"satorii/infrastructure/logger"
	"satorii/infrastructure/metrics"

	"github.com/tidwall/gjson"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// CallFunc performs one request against the Data API with the given service.
// It returns the typed list response.
type CallFunc func(ctx context.Context, svc *youtube.Service) (interface{}, error)

// Gate executes every outbound Data API request, rotating through the
// credential pool when a key reports quota exhaustion.
type Gate struct {
	pool     *CredentialPool
	services map[string]*youtube.Service
}

// NewGate builds one service per credential. Keys are sent as the "key" query
// parameter by a per-key transport; option.WithAPIKey is ignored once a custom
// HTTP client is supplied.
func NewGate(ctx context.Context, keys []string, baseURL string, timeout time.Duration) (*Gate, error) {
	g := &Gate{
		pool:     NewCredentialPool(keys),
		services: make(map[string]*youtube.Service, len(keys)),
	}
	for _, key := range keys {
		if _, ok := g.services[key]; ok {
			continue
		}
		svc, err := newService(ctx, key, baseURL, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service: %w", err)
		}
		g.services[key] = svc
	}
	return g, nil
}

func newService(ctx context.Context, key, baseURL string, timeout time.Duration) (*youtube.Service, error) {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &keyTransport{key: key, base: http.DefaultTransport},
	}
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}
	return youtube.NewService(ctx, opts...)
}

type keyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(r)
}

// Pool exposes the credential pool, mainly for inspection in tests.
func (g *Gate) Pool() *CredentialPool { return g.pool }

// Execute runs call through the credential pool and classifies the outcome.
// A 2xx response whose items list is empty is reported as Empty.
func (g *Gate) Execute(ctx context.Context, operation string, call CallFunc) model.FetchOutcome {
	log := logger.GetLogger().WithField("operation", operation)

	if g.pool.Size() == 0 {
		log.Warn("No usable API keys configured")
		return model.Failure(model.FailureQuotaExceeded, errors.New("no api keys configured"))
	}

	var outcome model.FetchOutcome
	var lastErr error
	rotation := g.pool.WithNextCredential(func(key string) AttemptResult {
		resp, err := call(ctx, g.services[key])
		if err != nil {
			lastErr = err
			result, reason := classify(err)
			metrics.UpstreamAttemptsTotal.WithLabelValues(operation, string(reason)).Inc()
			if result == AttemptQuotaExceeded {
				metrics.KeyRotationsTotal.Inc()
				log.WithField("keySuffix", keySuffix(key)).Warn("API key quota exceeded, rotating")
			} else {
				outcome = model.Failure(reason, err)
			}
			return result
		}

		payload, err := json.Marshal(resp)
		if err != nil {
			outcome = model.Failure(model.FailureUpstream, fmt.Errorf("encode response: %w", err))
			metrics.UpstreamAttemptsTotal.WithLabelValues(operation, string(model.FailureUpstream)).Inc()
			return AttemptFailed
		}
		if gjson.GetBytes(payload, "items.#").Int() == 0 {
			outcome = model.Empty()
			metrics.UpstreamAttemptsTotal.WithLabelValues(operation, "empty").Inc()
			return AttemptSucceeded
		}
		outcome = model.Success(payload, gjson.GetBytes(payload, "nextPageToken").String())
		metrics.UpstreamAttemptsTotal.WithLabelValues(operation, "success").Inc()
		return AttemptSucceeded
	})

	if rotation.Exhausted {
		log.WithField("attempts", rotation.Attempts).Error("All API keys exhausted")
		return model.Failure(model.FailureQuotaExceeded, lastErr)
	}
	if rotation.Final == AttemptFailed {
		log.WithField("error", redact(lastErr)).Error("Upstream request failed")
	}
	return outcome
}

// classify maps an error from the generated client onto the rotation contract.
// Only HTTP 403 rotates; anything else ends the call.
func classify(err error) (AttemptResult, model.FailureReason) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusForbidden {
			return AttemptQuotaExceeded, model.FailureQuotaExceeded
		}
		return AttemptFailed, model.FailureUpstream
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return AttemptFailed, model.FailureUpstream
	}
	return AttemptFailed, model.FailureTransport
}

// redact strips the request URL, which carries the key, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func keySuffix(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "..." + key[len(key)-4:]
}
