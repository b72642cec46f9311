package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asistapp/asistencia-api/internal/service"
)

// Metrics records request duration and count per route. The route template
// is used as the path label so ids do not explode cardinality.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
