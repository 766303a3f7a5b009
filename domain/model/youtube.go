package model

import "time"

// Thumbnail is a single preview image as reported by YouTube
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Thumbnails holds every resolution YouTube may return for an item
type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// Best returns the highest resolution thumbnail that is present, or nil.
func (t Thumbnails) Best() *Thumbnail {
	for _, th := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil {
			return th
		}
	}
	return nil
}

// Video represents a YouTube video
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"published_at"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	// DurationSeconds is nil when upstream did not report a duration (raw search hits)
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	ViewCount       int64      `json:"view_count"`
	LikeCount       int64      `json:"like_count"`
	CommentCount    int64      `json:"comment_count"`
	Thumbnails      Thumbnails `json:"thumbnails"`
	Tags            []string   `json:"tags,omitempty"`
	CategoryID      string     `json:"category_id,omitempty"`
	LiveBroadcast   string     `json:"live_broadcast,omitempty"`
}

// HasDuration reports whether the duration is known.
func (v Video) HasDuration() bool { return v.DurationSeconds != nil }

// Channel represents a YouTube channel
type Channel struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CustomURL       string    `json:"custom_url,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	IconURL         string    `json:"icon_url"`
	BannerURL       string    `json:"banner_url,omitempty"`
	SubscriberCount int64     `json:"subscriber_count"`
	VideoCount      int64     `json:"video_count"`
	ViewCount       int64     `json:"view_count"`
}

// Comment represents a top level YouTube comment
type Comment struct {
	ID                string    `json:"id"`
	VideoID           string    `json:"video_id"`
	AuthorDisplayName string    `json:"author_display_name"`
	AuthorChannelID   string    `json:"author_channel_id"`
	AuthorImageURL    string    `json:"author_image_url,omitempty"`
	Text              string    `json:"text"`
	LikeCount         int64     `json:"like_count"`
	ReplyCount        int64     `json:"reply_count"`
	PublishedAt       time.Time `json:"published_at"`
}

// Category is a YouTube video category
type Category struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Assignable bool   `json:"assignable"`
}

// PlaylistItem is one entry of a playlist
type PlaylistItem struct {
	Video
	PlaylistID string `json:"playlist_id"`
	Position   int64  `json:"position"`
}
