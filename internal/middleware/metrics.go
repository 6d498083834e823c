package middleware

import (
	"strconv"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"

	"github.com/gin-gonic/gin"
)

// Metrics records request latency by route template, so path ids do not
// explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		infra.HTTPDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
