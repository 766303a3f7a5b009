package model

import (
	"fmt"
	"time"
)

// OutcomeKind tells which variant a FetchOutcome holds.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FailureReason classifies why an upstream call did not succeed.
type FailureReason string

const (
	// FailureQuotaExceeded means every credential in the pool answered 403.
	FailureQuotaExceeded FailureReason = "quota_exceeded"
	// FailureUpstream covers any other non-2xx answer or an unreadable body.
	FailureUpstream FailureReason = "upstream_error"
	// FailureTransport covers timeouts, DNS failures and resets.
	FailureTransport FailureReason = "transport_error"
)

// FetchOutcome is the result of one attempt to satisfy a request.
type FetchOutcome struct {
	Kind              OutcomeKind
	Payload           []byte
	ContinuationToken string
	Reason            FailureReason
	Err               error
}

func Success(payload []byte, continuationToken string) FetchOutcome {
	return FetchOutcome{Kind: OutcomeSuccess, Payload: payload, ContinuationToken: continuationToken}
}

func Empty() FetchOutcome {
	return FetchOutcome{Kind: OutcomeEmpty}
}

func Failure(reason FailureReason, err error) FetchOutcome {
	return FetchOutcome{Kind: OutcomeFailure, Reason: reason, Err: err}
}

func (o FetchOutcome) IsSuccess() bool { return o.Kind == OutcomeSuccess }

// Describe renders a short human readable explanation used in degraded responses.
func (o FetchOutcome) Describe() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "ok"
	case OutcomeEmpty:
		return "no results"
	default:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Reason, o.Err)
		}
		return string(o.Reason)
	}
}

// CacheCategory selects the freshness window of a cached response.
type CacheCategory string

const (
	CacheCategorySearch      CacheCategory = "search"
	CacheCategoryDetails     CacheCategory = "details"
	CacheCategoryTrending    CacheCategory = "trending"
	CacheCategoryChannelIcon CacheCategory = "channel_icon"
)

// CacheEntry is one memoized upstream response.
type CacheEntry struct {
	Key      string    `json:"key"`
	Payload  []byte    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

// Fresh reports whether the entry may still be served at now.
// A zero ttl never expires.
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	if e == nil {
		return false
	}
	if ttl <= 0 {
		return true
	}
	return now.Sub(e.StoredAt) <= ttl
}

// StreamKind is the media type of a resolved stream.
type StreamKind string

const (
	StreamAudio StreamKind = "audio"
	StreamVideo StreamKind = "video"
)

// Stream is a directly playable media URL resolved from an extraction mirror.
type Stream struct {
	VideoID  string     `json:"video_id"`
	URL      string     `json:"url"`
	Kind     StreamKind `json:"kind"`
	MimeType string     `json:"mime_type,omitempty"`
	Quality  string     `json:"quality,omitempty"`
	Instance string     `json:"instance"`
}
