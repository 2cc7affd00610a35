package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-service/internal/blog"
)

var startTime = time.Now()

// RegisterRoot wires the banner route and the catch-all. Unmatched paths get
// the same error shape as every other failure.
func RegisterRoot(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "blog service is healthy"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   blog.CategoryNotFound,
			"message": fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})
}

// RegisterReady wires the readiness probe. A nil client means the in-memory
// store is serving, which needs no external dependency.
func RegisterReady(r *gin.Engine, client *mongo.Client) {
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{}
		ready := true

		if client == nil {
			deps["storage"] = true
		} else if err := client.Ping(c.Request.Context(), nil); err != nil {
			deps["storage"] = false
			ready = false
		} else {
			deps["storage"] = true
		}

		body := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	})
}
