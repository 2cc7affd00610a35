package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"blog-service/internal/blog"
	"blog-service/pkg/logger"
)

// RecoveryMiddleware converts panics into clean 500 responses. The cause and
// stack are logged with the request id; clients only ever see the generic
// error shape.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorWithTraceID(logger.Fields{
					"request_id": RequestID(c),
					"panic":      fmt.Sprintf("%v", rec),
					"stack":      string(debug.Stack()),
				}, "panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   blog.CategoryServer,
					"message": "an unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}
