package youtube

import (
	"context"
	"strings"
	"time"

	"satorii/domain/dto"
	"satorii/domain/model"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

// Client represents YouTube Data API client
type Client struct {
	gate              *Gate
	defaultMaxResults int64
}

// Config represents YouTube API configuration
type Config struct {
	APIKeys []string `json:"api_keys"`
	// BaseURL overrides the API root, e.g. for a proxy. Empty means the public endpoint.
	BaseURL    string        `json:"base_url"`
	MaxResults int64         `json:"max_results"`
	Timeout    time.Duration `json:"timeout"`
}

var (
	videoParts   = []string{"snippet", "contentDetails", "statistics"}
	channelParts = []string{"snippet", "statistics", "brandingSettings"}
)

// NewYouTubeClient creates a new YouTube API client
func NewYouTubeClient(ctx context.Context, config *Config) (*Client, error) {
	gate, err := NewGate(ctx, config.APIKeys, config.BaseURL, config.Timeout)
	if err != nil {
		return nil, err
	}
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	return &Client{gate: gate, defaultMaxResults: maxResults}, nil
}

func (c *Client) Gate() *Gate { return c.gate }

func (c *Client) maxResults(n int64) int64 {
	if n <= 0 {
		return c.defaultMaxResults
	}
	if n > 50 {
		return 50
	}
	return n
}

// Search runs search.list. A RelatedToVideoID is sent as relatedToVideoId.
func (c *Client) Search(ctx context.Context, req *dto.YouTubeSearchRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "search", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		call := svc.Search.List([]string{"snippet"}).MaxResults(c.maxResults(req.MaxResults))
		searchType := req.Type
		if searchType == "" {
			searchType = "video"
		}
		call = call.Type(searchType)
		if req.Q != "" {
			call = call.Q(req.Q)
		}
		if req.PageToken != "" {
			call = call.PageToken(req.PageToken)
		}
		if req.Order != "" {
			call = call.Order(req.Order)
		}
		if req.ChannelID != "" {
			call = call.ChannelId(req.ChannelID)
		}
		if req.RegionCode != "" {
			call = call.RegionCode(req.RegionCode)
		}
		var opts []googleapi.CallOption
		if req.RelatedToVideoID != "" {
			opts = append(opts, googleapi.QueryParameter("relatedToVideoId", req.RelatedToVideoID))
		}
		return call.Context(ctx).Do(opts...)
	})
}

// ListVideos fetches full details for a batch of up to 50 ids.
func (c *Client) ListVideos(ctx context.Context, req *dto.YouTubeVideoIDsRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "videos", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		return svc.Videos.List(videoParts).
			Id(strings.Join(req.IDs, ",")).
			Context(ctx).
			Do()
	})
}

// ListTrending fetches the mostPopular chart of a region.
func (c *Client) ListTrending(ctx context.Context, req *dto.YouTubeTrendingRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "trending", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		call := svc.Videos.List(videoParts).
			Chart("mostPopular").
			RegionCode(req.RegionCode).
			MaxResults(c.maxResults(req.MaxResults))
		if req.VideoCategoryID != "" {
			call = call.VideoCategoryId(req.VideoCategoryID)
		}
		if req.PageToken != "" {
			call = call.PageToken(req.PageToken)
		}
		return call.Context(ctx).Do()
	})
}

func (c *Client) ListCategories(ctx context.Context, req *dto.YouTubeCategoriesRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "categories", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		return svc.VideoCategories.List([]string{"snippet"}).
			RegionCode(req.RegionCode).
			Context(ctx).
			Do()
	})
}

func (c *Client) ListChannels(ctx context.Context, req *dto.YouTubeChannelsRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "channels", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		return svc.Channels.List(channelParts).
			Id(strings.Join(req.IDs, ",")).
			Context(ctx).
			Do()
	})
}

// ListChannelVideos searches the latest uploads of one channel.
func (c *Client) ListChannelVideos(ctx context.Context, req *dto.YouTubeChannelVideosRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "channel_videos", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		call := svc.Search.List([]string{"snippet"}).
			ChannelId(req.ChannelID).
			Type("video").
			Order("date").
			MaxResults(c.maxResults(req.MaxResults))
		if req.PageToken != "" {
			call = call.PageToken(req.PageToken)
		}
		return call.Context(ctx).Do()
	})
}

func (c *Client) ListPlaylistItems(ctx context.Context, req *dto.YouTubePlaylistRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "playlist_items", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		call := svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(req.PlaylistID).
			MaxResults(c.maxResults(req.MaxResults))
		if req.PageToken != "" {
			call = call.PageToken(req.PageToken)
		}
		return call.Context(ctx).Do()
	})
}

func (c *Client) ListCommentThreads(ctx context.Context, req *dto.YouTubeCommentListRequest) model.FetchOutcome {
	return c.gate.Execute(ctx, "comment_threads", func(ctx context.Context, svc *youtube.Service) (interface{}, error) {
		call := svc.CommentThreads.List([]string{"snippet"}).
			VideoId(req.VideoID).
			MaxResults(c.maxResults(req.MaxResults)).
			TextFormat("plainText")
		if req.Order != "" {
			call = call.Order(req.Order)
		}
		if req.PageToken != "" {
			call = call.PageToken(req.PageToken)
		}
		return call.Context(ctx).Do()
	})
}
