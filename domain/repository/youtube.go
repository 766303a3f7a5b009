package repository

import (
	"context"

	"satorii/domain/dto"
	"satorii/domain/model"
)

// IYouTube defines the upstream YouTube Data API operations. Every call goes
// through the credential rotation gate and returns the raw JSON payload; it never
// returns an error, failures are reported through the outcome.
type IYouTube interface {
	Search(ctx context.Context, req *dto.YouTubeSearchRequest) model.FetchOutcome
	ListVideos(ctx context.Context, req *dto.YouTubeVideoIDsRequest) model.FetchOutcome
	ListTrending(ctx context.Context, req *dto.YouTubeTrendingRequest) model.FetchOutcome
	ListCategories(ctx context.Context, req *dto.YouTubeCategoriesRequest) model.FetchOutcome
	ListChannels(ctx context.Context, req *dto.YouTubeChannelsRequest) model.FetchOutcome
	ListChannelVideos(ctx context.Context, req *dto.YouTubeChannelVideosRequest) model.FetchOutcome
	ListPlaylistItems(ctx context.Context, req *dto.YouTubePlaylistRequest) model.FetchOutcome
	ListCommentThreads(ctx context.Context, req *dto.YouTubeCommentListRequest) model.FetchOutcome
}
