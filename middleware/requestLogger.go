package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request id and a request-scoped logger to the
// context under "logger".
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Header(requestIDHeader, reqID)
		c.Set("requestId", reqID)
		c.Set("logger", base.With(
			zap.String("requestId", reqID),
			zap.String("path", c.FullPath()),
		))
		c.Next()
	}
}
