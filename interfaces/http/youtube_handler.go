package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"satorii/domain/dto"
	"satorii/infrastructure/logger"
	"satorii/usecase"

	"github.com/gin-gonic/gin"
)

// IYouTubeHandler defines the interface for YouTube HTTP handlers
type IYouTubeHandler interface {
	// Video operations
	SearchVideos(ctx *gin.Context)
	GetTrending(ctx *gin.Context)
	GetCategories(ctx *gin.Context)
	GetSuggestions(ctx *gin.Context)
	GetVideos(ctx *gin.Context)
	GetVideoDetails(ctx *gin.Context)
	GetRelatedVideos(ctx *gin.Context)
	GetStream(ctx *gin.Context)
	GetVideoComments(ctx *gin.Context)

	// Channel operations
	GetChannelDetails(ctx *gin.Context)
	GetChannelIcon(ctx *gin.Context)
	InvalidateChannelIcon(ctx *gin.Context)
	GetChannelVideos(ctx *gin.Context)

	// Playlist operations
	GetPlaylistItems(ctx *gin.Context)

	Resolve(ctx *gin.Context)
}

// YouTubeHandler implements the YouTube HTTP handlers
type YouTubeHandler struct {
	youtubeUseCase usecase.IYouTubeUseCase
}

// NewYouTubeHandler creates a new YouTube handler instance
func NewYouTubeHandler(youtubeUseCase usecase.IYouTubeUseCase) IYouTubeHandler {
	return &YouTubeHandler{
		youtubeUseCase: youtubeUseCase,
	}
}

// query reads a parameter given in snake_case or camelCase.
func query(ctx *gin.Context, names ...string) string {
	for _, n := range names {
		if v := ctx.Query(n); v != "" {
			return v
		}
	}
	return ""
}

func maxResults(ctx *gin.Context) int64 {
	raw := query(ctx, "max_results", "maxResults")
	if raw == "" {
		return 0
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

func pageToken(ctx *gin.Context) string {
	return query(ctx, "page_token", "pageToken")
}

// excludeShorts defaults to true; feeds hide shorts unless asked not to.
func excludeShorts(ctx *gin.Context) bool {
	raw := query(ctx, "exclude_shorts", "excludeShorts")
	if raw == "" {
		return true
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return val
}

func respond(ctx *gin.Context, data interface{}, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidArgument) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"message": err.Error(),
			})
			return
		}
		logger.GetLogger().WithField("path", ctx.FullPath()).WithField("error", err).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal error",
			"message": "the request could not be completed",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// SearchVideos handles GET /api/youtube/search
func (h *YouTubeHandler) SearchVideos(ctx *gin.Context) {
	req := &dto.YouTubeSearchRequest{
		Q:                ctx.Query("q"),
		Type:             ctx.Query("type"),
		MaxResults:       maxResults(ctx),
		PageToken:        pageToken(ctx),
		Order:            ctx.Query("order"),
		ChannelID:        query(ctx, "channel_id", "channelId"),
		RegionCode:       query(ctx, "region_code", "regionCode"),
		ExcludeShorts:    excludeShorts(ctx),
		SkipEnrichment:   ctx.Query("raw") == "true",
		RelatedToVideoID: query(ctx, "related_to_video_id", "relatedToVideoId"),
	}
	response, err := h.youtubeUseCase.SearchVideos(ctx.Request.Context(), req)
	respond(ctx, response, err)
}

// GetTrending handles GET /api/youtube/trending
func (h *YouTubeHandler) GetTrending(ctx *gin.Context) {
	req := &dto.YouTubeTrendingRequest{
		RegionCode:      query(ctx, "region_code", "regionCode", "region"),
		VideoCategoryID: query(ctx, "category_id", "categoryId", "video_category_id"),
		MaxResults:      maxResults(ctx),
		PageToken:       pageToken(ctx),
		ExcludeShorts:   excludeShorts(ctx),
	}
	response, err := h.youtubeUseCase.GetTrending(ctx.Request.Context(), req)
	respond(ctx, response, err)
}

// GetCategories handles GET /api/youtube/categories
func (h *YouTubeHandler) GetCategories(ctx *gin.Context) {
	response, err := h.youtubeUseCase.GetCategories(ctx.Request.Context(), query(ctx, "region_code", "regionCode", "region"))
	respond(ctx, response, err)
}

// GetSuggestions handles GET /api/youtube/suggestions
func (h *YouTubeHandler) GetSuggestions(ctx *gin.Context) {
	response, err := h.youtubeUseCase.Suggest(ctx.Request.Context(), ctx.Query("q"))
	respond(ctx, response, err)
}

// GetVideos handles GET /api/youtube/videos?ids=a,b
func (h *YouTubeHandler) GetVideos(ctx *gin.Context) {
	ids := strings.Split(query(ctx, "ids", "id"), ",")
	response, err := h.youtubeUseCase.GetVideosByIDs(ctx.Request.Context(), ids)
	respond(ctx, response, err)
}

// GetVideoDetails handles GET /api/youtube/videos/:videoId
func (h *YouTubeHandler) GetVideoDetails(ctx *gin.Context) {
	video, err := h.youtubeUseCase.GetVideoDetails(ctx.Request.Context(), ctx.Param("videoId"))
	if err == nil && video == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Video not found",
			"message": "the video does not exist or YouTube is unavailable",
		})
		return
	}
	respond(ctx, video, err)
}

// GetRelatedVideos handles GET /api/youtube/videos/:videoId/related
func (h *YouTubeHandler) GetRelatedVideos(ctx *gin.Context) {
	req := &dto.YouTubeRelatedRequest{
		VideoID:       ctx.Param("videoId"),
		Title:         ctx.Query("title"),
		MaxResults:    maxResults(ctx),
		PageToken:     pageToken(ctx),
		ExcludeShorts: excludeShorts(ctx),
	}
	response, err := h.youtubeUseCase.GetRelatedVideos(ctx.Request.Context(), req)
	respond(ctx, response, err)
}

// GetStream handles GET /api/youtube/videos/:videoId/stream
func (h *YouTubeHandler) GetStream(ctx *gin.Context) {
	response, err := h.youtubeUseCase.ResolveStream(ctx.Request.Context(), ctx.Param("videoId"))
	respond(ctx, response, err)
}

// GetVideoComments handles GET /api/youtube/videos/:videoId/comments
func (h *YouTubeHandler) GetVideoComments(ctx *gin.Context) {
	req := &dto.YouTubeCommentListRequest{
		VideoID:    ctx.Param("videoId"),
		MaxResults: maxResults(ctx),
		PageToken:  pageToken(ctx),
		Order:      ctx.Query("order"),
	}
	response, err := h.youtubeUseCase.GetComments(ctx.Request.Context(), req)
	respond(ctx, response, err)
}

// GetChannelDetails handles GET /api/youtube/channels/:channelId
func (h *YouTubeHandler) GetChannelDetails(ctx *gin.Context) {
	channel, err := h.youtubeUseCase.GetChannelDetails(ctx.Request.Context(), ctx.Param("channelId"))
	if err == nil && channel == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Channel not found",
			"message": "the channel does not exist or YouTube is unavailable",
		})
		return
	}
	respond(ctx, channel, err)
}

// GetChannelIcon handles GET /api/youtube/channels/:channelId/icon
func (h *YouTubeHandler) GetChannelIcon(ctx *gin.Context) {
	channelID := ctx.Param("channelId")
	icon, err := h.youtubeUseCase.GetChannelIcon(ctx.Request.Context(), channelID)
	respond(ctx, gin.H{"channel_id": channelID, "icon_url": icon}, err)
}

// InvalidateChannelIcon handles DELETE /api/youtube/channels/:channelId/icon
func (h *YouTubeHandler) InvalidateChannelIcon(ctx *gin.Context) {
	channelID := ctx.Param("channelId")
	err := h.youtubeUseCase.InvalidateChannelIcon(ctx.Request.Context(), channelID)
	respond(ctx, gin.H{"channel_id": channelID, "invalidated": err == nil}, err)
}

// GetChannelVideos handles GET /api/youtube/channels/:channelId/videos
func (h *YouTubeHandler) GetChannelVideos(ctx *gin.Context) {
	req := &dto.YouTubeChannelVideosRequest{
		ChannelID:     ctx.Param("channelId"),
		MaxResults:    maxResults(ctx),
		PageToken:     pageToken(ctx),
		ExcludeShorts: excludeShorts(ctx),
	}
	response, err := h.youtubeUseCase.GetChannelVideos(ctx.Request.Context(), req)
	respond(ctx, response, err)
}

// GetPlaylistItems handles GET /api/youtube/playlists/:playlistId/items
func (h *YouTubeHandler) GetPlaylistItems(ctx *gin.Context) {
	req := &dto.YouTubePlaylistRequest{
		PlaylistID: ctx.Param("playlistId"),
		MaxResults: maxResults(ctx),
		PageToken:  pageToken(ctx),
		// playlists keep every entry unless the caller opts in
		ExcludeShorts: ctx.Query("exclude_shorts") == "true" || ctx.Query("excludeShorts") == "true",
	}
	response, err := h.youtubeUseCase.GetPlaylistItems(ctx.Request.Context(), req)
	respond(ctx, response, err)
}

// Resolve handles GET /api/youtube/resolve?url=
func (h *YouTubeHandler) Resolve(ctx *gin.Context) {
	response, err := h.youtubeUseCase.Resolve(ctx.Query("url"))
	respond(ctx, response, err)
}
