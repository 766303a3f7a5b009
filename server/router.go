package server

import (
	"time"

	httpHandler "satorii/interfaces/http"
	"satorii/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultOrigins = []string{"http://localhost:4200", "http://localhost:5173", "https://localhost:4200"}

func InitiateRouter(
	healthHandler httpHandler.IHealthHandler,
	youtubeHandler httpHandler.IYouTubeHandler,
	allowedOrigins []string,
) *gin.Engine {
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultOrigins
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	youtube := router.Group("/api/youtube")
	{
		youtube.GET("/search", youtubeHandler.SearchVideos)
		youtube.GET("/trending", youtubeHandler.GetTrending)
		youtube.GET("/categories", youtubeHandler.GetCategories)
		youtube.GET("/suggestions", youtubeHandler.GetSuggestions)
		youtube.GET("/resolve", youtubeHandler.Resolve)

		// Video operations
		youtube.GET("/videos", youtubeHandler.GetVideos)
		youtube.GET("/videos/:videoId", youtubeHandler.GetVideoDetails)
		youtube.GET("/videos/:videoId/related", youtubeHandler.GetRelatedVideos)
		youtube.GET("/videos/:videoId/stream", youtubeHandler.GetStream)
		youtube.GET("/videos/:videoId/comments", youtubeHandler.GetVideoComments)

		// Channel operations
		youtube.GET("/channels/:channelId", youtubeHandler.GetChannelDetails)
		youtube.GET("/channels/:channelId/icon", youtubeHandler.GetChannelIcon)
		youtube.DELETE("/channels/:channelId/icon", youtubeHandler.InvalidateChannelIcon)
		youtube.GET("/channels/:channelId/videos", youtubeHandler.GetChannelVideos)

		// Playlist operations
		youtube.GET("/playlists/:playlistId/items", youtubeHandler.GetPlaylistItems)
	}

	return router
}
