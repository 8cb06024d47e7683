package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"linkboard/internal/logging"
	"linkboard/internal/metrics"
)

// AccessLog emits one line per request after the response is produced,
// whatever the handler did, and feeds the request counter and latency
// histogram.
func AccessLog(log logging.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		elapsed := time.Since(started)

		method := c.Request.Method
		path := c.Request.URL.Path
		status := c.Writer.Status()

		log.Info(c.Request.Context(), "request completed",
			"method", method,
			"path", path,
			"request_id", GetRequestID(c),
			"remote", c.ClientIP(),
			"status", status,
		)
		m.ObserveRequest(method, path, status, elapsed)
	}
}
