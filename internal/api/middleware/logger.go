package middleware

import (
	"time"

	"steam-roi/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Logger tags each request with an id (reusing the caller's X-Request-ID when
// present), stores it in the request context for downstream logging and
// writes one line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		ctx := logger.With(c.Request.Context(), "request_id", id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			logger.Errorf(ctx, "%s %s %d %v", c.Request.Method, path, status, latency)
		case status >= 400:
			logger.Warnf(ctx, "%s %s %d %v", c.Request.Method, path, status, latency)
		default:
			logger.Infof(ctx, "%s %s %d %v", c.Request.Method, path, status, latency)
		}
	}
}
