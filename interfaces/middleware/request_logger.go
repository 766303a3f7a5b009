package middleware

import (
	"strconv"
	"time"

	"satorii/infrastructure/logger"
	"satorii/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// RequestLogger records one access log line and the request metrics for
// every request. Query strings are not logged.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := ctx.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(route, ctx.Request.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, ctx.Request.Method).Observe(elapsed.Seconds())

		entry := logger.GetLogger().WithFields(map[string]interface{}{
			"method":    ctx.Request.Method,
			"path":      ctx.Request.URL.Path,
			"status":    status,
			"latencyMs": elapsed.Milliseconds(),
		})
		switch {
		case status >= 500:
			entry.Error("Request served")
		case status >= 400:
			entry.Warn("Request served")
		default:
			entry.Debug("Request served")
		}
	}
}
