package repository

import (
	"context"

	"satorii/domain/model"
)

// IStreamResolver turns a video id into a directly playable stream URL.
// It returns nil, nil when no mirror could produce one.
type IStreamResolver interface {
	ResolveStream(ctx context.Context, videoID string) (*model.Stream, error)
}

// ISuggester fetches search autocomplete suggestions
type ISuggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}
