package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blog-service/pkg/metrics"
)

// MetricsMiddleware records request counts and latencies. The matched route
// pattern keys the series, not the raw URL, so ids do not blow up label
// cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
