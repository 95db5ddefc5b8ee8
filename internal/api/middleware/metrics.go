package middleware

import (
	"time"

	"sales-forecast/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per route template. Unmatched paths share
// one label to keep cardinality bounded.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.ObserveHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
