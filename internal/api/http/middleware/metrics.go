package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arcynforge/forge-backend/internal/metrics"
)

// Metrics records a count and latency observation for every request. Routes
// are labeled by their registered pattern so path parameters do not explode
// the cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
