package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/metrics"
)

// RequestMetrics records count and latency of each request after it is handled.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := metrics.NewTimer()
		c.Next()

		// Use the route template to keep label cardinality bounded (/api/v1/posts/:id)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if route == "/metrics" {
			return
		}
		metrics.APIRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		timer.ObserveDurationVec(metrics.APIRequestDuration, c.Request.Method, route)
	}
}
