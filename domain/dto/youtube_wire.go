package dto

import (
	"bytes"
	"encoding/json"

	"satorii/domain/model"
)

// The types below mirror the JSON bodies of the YouTube Data API v3. Cached
// payloads are stored in this shape and decoded on every read.

// ResourceID is either a bare string ("videos" list) or an object ("search" list).
type ResourceID struct {
	Kind       string `json:"kind,omitempty"`
	VideoID    string `json:"videoId,omitempty"`
	ChannelID  string `json:"channelId,omitempty"`
	PlaylistID string `json:"playlistId,omitempty"`
}

func (r *ResourceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ResourceID{VideoID: s, ChannelID: s, PlaylistID: s}
		return nil
	}
	type plain ResourceID
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = ResourceID(p)
	return nil
}

type Snippet struct {
	PublishedAt          string           `json:"publishedAt"`
	ChannelID            string           `json:"channelId"`
	ChannelTitle         string           `json:"channelTitle"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	CustomURL            string           `json:"customUrl"`
	Thumbnails           model.Thumbnails `json:"thumbnails"`
	Tags                 []string         `json:"tags"`
	CategoryID           string           `json:"categoryId"`
	LiveBroadcastContent string           `json:"liveBroadcastContent"`
	Assignable           bool             `json:"assignable"`
	// playlistItems only
	PlaylistID             string      `json:"playlistId"`
	Position               int64       `json:"position"`
	ResourceID             *ResourceID `json:"resourceId"`
	VideoOwnerChannelID    string      `json:"videoOwnerChannelId"`
	VideoOwnerChannelTitle string      `json:"videoOwnerChannelTitle"`
}

type ContentDetails struct {
	Duration string `json:"duration"`
	VideoID  string `json:"videoId"`
}

type Statistics struct {
	ViewCount       uint64 `json:"viewCount,string,omitempty"`
	LikeCount       uint64 `json:"likeCount,string,omitempty"`
	CommentCount    uint64 `json:"commentCount,string,omitempty"`
	SubscriberCount uint64 `json:"subscriberCount,string,omitempty"`
	VideoCount      uint64 `json:"videoCount,string,omitempty"`
}

type BrandingSettings struct {
	Image struct {
		BannerExternalURL string `json:"bannerExternalUrl"`
	} `json:"image"`
}

type Item struct {
	Kind             string            `json:"kind"`
	Etag             string            `json:"etag"`
	ID               ResourceID        `json:"id"`
	Snippet          *Snippet          `json:"snippet"`
	ContentDetails   *ContentDetails   `json:"contentDetails"`
	Statistics       *Statistics       `json:"statistics"`
	BrandingSettings *BrandingSettings `json:"brandingSettings"`
}

// PageInfo represents pagination information
type PageInfo struct {
	TotalResults   int64 `json:"totalResults"`
	ResultsPerPage int64 `json:"resultsPerPage"`
}

// ListResponse is the common envelope of search, videos, channels, playlistItems and videoCategories
type ListResponse struct {
	Kind          string   `json:"kind"`
	Etag          string   `json:"etag"`
	NextPageToken string   `json:"nextPageToken"`
	PrevPageToken string   `json:"prevPageToken"`
	PageInfo      PageInfo `json:"pageInfo"`
	Items         []Item   `json:"items"`
}

type CommentSnippet struct {
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	AuthorChannelID       struct {
		Value string `json:"value"`
	} `json:"authorChannelId"`
	TextDisplay  string `json:"textDisplay"`
	TextOriginal string `json:"textOriginal"`
	LikeCount    int64  `json:"likeCount"`
	PublishedAt  string `json:"publishedAt"`
	VideoID      string `json:"videoId"`
}

type CommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		VideoID         string `json:"videoId"`
		TotalReplyCount int64  `json:"totalReplyCount"`
		TopLevelComment struct {
			ID      string         `json:"id"`
			Snippet CommentSnippet `json:"snippet"`
		} `json:"topLevelComment"`
	} `json:"snippet"`
}

type CommentThreadListResponse struct {
	NextPageToken string          `json:"nextPageToken"`
	PageInfo      PageInfo        `json:"pageInfo"`
	Items         []CommentThread `json:"items"`
}
