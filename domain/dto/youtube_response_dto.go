package dto

import "satorii/domain/model"

// Result states surfaced to callers. Upstream trouble is never an error response;
// it is an empty result carrying StatusUnavailable and a message.
const (
	StatusOK          = "ok"
	StatusEmpty       = "empty"
	StatusUnavailable = "unavailable"
)

// Sources of a related videos list
const (
	SourceRelated     = "related"
	SourceTitleSearch = "title_search"
)

// YouTubeVideoResponse represents a page of videos
type YouTubeVideoResponse struct {
	Items          []model.Video `json:"items"`
	NextPageToken  string        `json:"next_page_token,omitempty"`
	TotalResults   int64         `json:"total_results"`
	Status         string        `json:"status"`
	Message        string        `json:"message,omitempty"`
	Source         string        `json:"source,omitempty"`
	FilteredShorts int           `json:"filtered_shorts,omitempty"`
	// RelatedTags suggests follow-up search terms (search only)
	RelatedTags []string `json:"related_tags,omitempty"`
}

// YouTubeChannelResponse represents a batch of channels
type YouTubeChannelResponse struct {
	Items   []model.Channel `json:"items"`
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
}

// YouTubePlaylistItemsResponse represents a page of playlist entries
type YouTubePlaylistItemsResponse struct {
	Items          []model.PlaylistItem `json:"items"`
	NextPageToken  string               `json:"next_page_token,omitempty"`
	TotalResults   int64                `json:"total_results"`
	Status         string               `json:"status"`
	Message        string               `json:"message,omitempty"`
	FilteredShorts int                  `json:"filtered_shorts,omitempty"`
}

// YouTubeCommentResponse represents comment response
type YouTubeCommentResponse struct {
	Items         []model.Comment `json:"items"`
	NextPageToken string          `json:"next_page_token,omitempty"`
	Status        string          `json:"status"`
	Message       string          `json:"message,omitempty"`
}

// YouTubeCategoryResponse lists video categories
type YouTubeCategoryResponse struct {
	Items   []model.Category `json:"items"`
	Status  string           `json:"status"`
	Message string           `json:"message,omitempty"`
}

// StreamResponse tells whether a playable stream was found
type StreamResponse struct {
	Available bool          `json:"available"`
	Stream    *model.Stream `json:"stream,omitempty"`
}

// SuggestionResponse lists autocomplete suggestions
type SuggestionResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// ResolveResponse carries ids extracted from a pasted YouTube URL
type ResolveResponse struct {
	VideoID    string `json:"video_id,omitempty"`
	PlaylistID string `json:"playlist_id,omitempty"`
}
