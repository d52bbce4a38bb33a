package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Antles/FinalCS340/internal/pkg/metrics"
)

// unmatchedEndpoint labels requests that hit no route, keeping label
// cardinality bounded.
const unmatchedEndpoint = "unmatched"

// Metrics returns a gin middleware that records request counts and latency
// by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedEndpoint
		}
		m.RecordHTTPRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
