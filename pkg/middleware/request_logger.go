package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-service/pkg/logger"
)

// RequestLoggerMiddleware writes one structured line per request. The level
// follows the response class so error rates can be read straight off the logs.
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields{
			"request_id": RequestID(c),
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"size":       c.Writer.Size(),
		}

		switch {
		case status >= 500:
			logger.WithFields(fields).Error("server error")
		case status >= 400:
			logger.WithFields(fields).Warn("client error")
		default:
			logger.WithFields(fields).Info("request served")
		}
	}
}
