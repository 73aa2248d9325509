package slogx

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader is echoed back on every response. An incoming value that
// fails ValidRequestID is replaced with a fresh ULID.
const RequestIDHeader = "X-Request-ID"

// GinMiddleware logs each request and attaches a contextual logger to the
// request context.
func GinMiddleware(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if !ValidRequestID(reqID) {
			reqID = NewRequestID()
		}
		c.Header(RequestIDHeader, reqID)

		logger := base.With(
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.ClientIP(),
		)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), logger))

		c.Next()

		attrs := []any{
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"user_agent", c.Request.UserAgent(),
		}
		if uid, ok := c.Get("user_id"); ok {
			attrs = append(attrs, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		logger.Info("http_request", attrs...)
	}
}
