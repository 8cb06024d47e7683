// Package middleware carries the per-request plumbing: correlation ids
// and the unconditional access log + request metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID attaches a correlation id to every request and echoes it in
// the response. With tracing enabled an id supplied by an upstream proxy
// is trusted, so log lines correlate across services.
func RequestID(trustInbound bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if trustInbound {
			id = c.GetHeader(requestIDHeader)
		}
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation id assigned by RequestID, or ""
// when the middleware did not run (tests hitting a bare handler).
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
