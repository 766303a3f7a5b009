package dto

// Request descriptors. The `url` tags name the upstream query parameters and are
// also what the response cache key is built from, so every field that changes the
// upstream answer must carry one. Fields tagged `url:"-"` only shape what happens
// after the cache (filtering, fallback).

// YouTubeSearchRequest represents request for searching videos
type YouTubeSearchRequest struct {
	Q                string `json:"q" url:"q,omitempty"`
	Type             string `json:"type,omitempty" url:"type,omitempty"` // video, channel, playlist
	MaxResults       int64  `json:"max_results,omitempty" url:"maxResults,omitempty"`
	PageToken        string `json:"page_token,omitempty" url:"pageToken,omitempty"`
	Order            string `json:"order,omitempty" url:"order,omitempty"` // date, rating, relevance, title, viewCount
	ChannelID        string `json:"channel_id,omitempty" url:"channelId,omitempty"`
	RelatedToVideoID string `json:"related_to_video_id,omitempty" url:"relatedToVideoId,omitempty"`
	RegionCode       string `json:"region_code,omitempty" url:"regionCode,omitempty"`
	ExcludeShorts    bool   `json:"exclude_shorts,omitempty" url:"-"`
	// SkipEnrichment returns raw search hits without the batch details lookup
	SkipEnrichment bool `json:"skip_enrichment,omitempty" url:"-"`
}

// YouTubeVideoIDsRequest looks up a batch of videos by id
type YouTubeVideoIDsRequest struct {
	IDs []string `json:"ids" url:"id,comma"`
}

// YouTubeTrendingRequest represents request for the most popular chart
type YouTubeTrendingRequest struct {
	RegionCode      string `json:"region_code,omitempty" url:"regionCode"`
	VideoCategoryID string `json:"video_category_id,omitempty" url:"videoCategoryId,omitempty"`
	MaxResults      int64  `json:"max_results,omitempty" url:"maxResults,omitempty"`
	PageToken       string `json:"page_token,omitempty" url:"pageToken,omitempty"`
	ExcludeShorts   bool   `json:"exclude_shorts,omitempty" url:"-"`
}

// YouTubeCategoriesRequest lists the video categories of a region
type YouTubeCategoriesRequest struct {
	RegionCode string `json:"region_code,omitempty" url:"regionCode"`
}

// YouTubeChannelsRequest looks up a batch of channels by id
type YouTubeChannelsRequest struct {
	IDs []string `json:"ids" url:"id,comma"`
}

// YouTubeChannelVideosRequest lists the latest uploads of a channel
type YouTubeChannelVideosRequest struct {
	ChannelID     string `json:"channel_id" url:"channelId"`
	MaxResults    int64  `json:"max_results,omitempty" url:"maxResults,omitempty"`
	PageToken     string `json:"page_token,omitempty" url:"pageToken,omitempty"`
	ExcludeShorts bool   `json:"exclude_shorts,omitempty" url:"-"`
}

// YouTubePlaylistRequest represents request for playlist operations
type YouTubePlaylistRequest struct {
	PlaylistID    string `json:"playlist_id" url:"playlistId"`
	MaxResults    int64  `json:"max_results,omitempty" url:"maxResults,omitempty"`
	PageToken     string `json:"page_token,omitempty" url:"pageToken,omitempty"`
	ExcludeShorts bool   `json:"exclude_shorts,omitempty" url:"-"`
}

// YouTubeCommentListRequest represents request for listing comments
type YouTubeCommentListRequest struct {
	VideoID    string `json:"video_id" url:"videoId"`
	MaxResults int64  `json:"max_results,omitempty" url:"maxResults,omitempty"`
	PageToken  string `json:"page_token,omitempty" url:"pageToken,omitempty"`
	Order      string `json:"order,omitempty" url:"order,omitempty"` // time, relevance
}

// YouTubeRelatedRequest asks for videos related to a seed video
type YouTubeRelatedRequest struct {
	VideoID string `json:"video_id"`
	// Title of the seed video, used by the title search fallback. Looked up when empty.
	Title         string `json:"title,omitempty"`
	MaxResults    int64  `json:"max_results,omitempty"`
	PageToken     string `json:"page_token,omitempty"`
	ExcludeShorts bool   `json:"exclude_shorts,omitempty"`
}
