package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"satorii/domain/dto"
	"satorii/domain/model"
)

func decodeList(payload []byte) (*dto.ListResponse, error) {
	var resp dto.ListResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return &resp, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// toVideo maps a search, videos or playlistItems entry onto a Video.
func toVideo(item dto.Item) model.Video {
	v := model.Video{ID: firstNonEmpty(item.ID.VideoID, item.ID.ChannelID, item.ID.PlaylistID)}
	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.Description = s.Description
		v.PublishedAt = parseTime(s.PublishedAt)
		v.ChannelID = firstNonEmpty(s.VideoOwnerChannelID, s.ChannelID)
		v.ChannelName = firstNonEmpty(s.VideoOwnerChannelTitle, s.ChannelTitle)
		v.Thumbnails = s.Thumbnails
		v.Tags = s.Tags
		v.CategoryID = s.CategoryID
		v.LiveBroadcast = s.LiveBroadcastContent
		if s.ResourceID != nil && s.ResourceID.VideoID != "" {
			v.ID = s.ResourceID.VideoID
		}
	}
	if cd := item.ContentDetails; cd != nil {
		if cd.VideoID != "" {
			v.ID = cd.VideoID
		}
		if secs, ok := ParseISODuration(cd.Duration); ok {
			v.DurationSeconds = &secs
		}
	}
	if st := item.Statistics; st != nil {
		v.ViewCount = int64(st.ViewCount)
		v.LikeCount = int64(st.LikeCount)
		v.CommentCount = int64(st.CommentCount)
	}
	return v
}

func decodeVideos(payload []byte) ([]model.Video, *dto.ListResponse, error) {
	resp, err := decodeList(payload)
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := toVideo(item)
		if v.ID == "" {
			continue
		}
		out = append(out, v)
	}
	return out, resp, nil
}

func decodePlaylistItems(payload []byte) ([]model.PlaylistItem, *dto.ListResponse, error) {
	resp, err := decodeList(payload)
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.PlaylistItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		v := toVideo(item)
		if v.ID == "" {
			continue
		}
		pi := model.PlaylistItem{Video: v}
		if item.Snippet != nil {
			pi.PlaylistID = item.Snippet.PlaylistID
			pi.Position = item.Snippet.Position
		}
		out = append(out, pi)
	}
	return out, resp, nil
}

func decodeChannels(payload []byte) ([]model.Channel, error) {
	resp, err := decodeList(payload)
	if err != nil {
		return nil, err
	}
	out := make([]model.Channel, 0, len(resp.Items))
	for _, item := range resp.Items {
		c := model.Channel{ID: firstNonEmpty(item.ID.ChannelID, item.ID.VideoID)}
		if s := item.Snippet; s != nil {
			c.Title = s.Title
			c.Description = s.Description
			c.CustomURL = s.CustomURL
			c.PublishedAt = parseTime(s.PublishedAt)
			if th := s.Thumbnails.Best(); th != nil {
				c.IconURL = th.URL
			}
		}
		if st := item.Statistics; st != nil {
			c.SubscriberCount = int64(st.SubscriberCount)
			c.VideoCount = int64(st.VideoCount)
			c.ViewCount = int64(st.ViewCount)
		}
		if b := item.BrandingSettings; b != nil {
			c.BannerURL = b.Image.BannerExternalURL
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeCategories(payload []byte) ([]model.Category, error) {
	resp, err := decodeList(payload)
	if err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(resp.Items))
	for _, item := range resp.Items {
		c := model.Category{ID: firstNonEmpty(item.ID.VideoID, item.ID.ChannelID)}
		if item.Snippet != nil {
			c.Title = item.Snippet.Title
			c.Assignable = item.Snippet.Assignable
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeComments(payload []byte) ([]model.Comment, string, error) {
	var resp dto.CommentThreadListResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, "", fmt.Errorf("decode comment threads: %w", err)
	}
	out := make([]model.Comment, 0, len(resp.Items))
	for _, th := range resp.Items {
		top := th.Snippet.TopLevelComment
		out = append(out, model.Comment{
			ID:                firstNonEmpty(top.ID, th.ID),
			VideoID:           firstNonEmpty(top.Snippet.VideoID, th.Snippet.VideoID),
			AuthorDisplayName: top.Snippet.AuthorDisplayName,
			AuthorChannelID:   top.Snippet.AuthorChannelID.Value,
			AuthorImageURL:    top.Snippet.AuthorProfileImageURL,
			Text:              firstNonEmpty(top.Snippet.TextDisplay, top.Snippet.TextOriginal),
			LikeCount:         top.Snippet.LikeCount,
			ReplyCount:        th.Snippet.TotalReplyCount,
			PublishedAt:       parseTime(top.Snippet.PublishedAt),
		})
	}
	return out, resp.NextPageToken, nil
}
