package http

import (
	"context"
	"net/http"
	"time"

	"satorii/domain/repository"

	"github.com/gin-gonic/gin"
)

type IHealthHandler interface {
	Healthz(c *gin.Context)
}

type HealthHandler struct {
	store repository.IResponseCache
	apiKeys int
}

// NewHealthHandler reports on the cache store and the number of configured API keys.
func NewHealthHandler(store repository.IResponseCache, apiKeys int) IHealthHandler {
	return &HealthHandler{store: store, apiKeys: apiKeys}
}

// Healthz returns OK when the cache store answers. A store failure is reported
// as degraded, since requests still reach YouTube without the cache.
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	res := gin.H{"status": "ok", "api_keys": h.apiKeys, "cache": "ok"}

	if pinger, ok := h.store.(repository.Pinger); ok {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Ping(pingCtx); err != nil {
			res["status"] = "degraded"
			res["cache"] = err.Error()
		}
	}
	if h.apiKeys == 0 {
		res["status"] = "degraded"
	}
	ctx.JSON(http.StatusOK, res)
}
