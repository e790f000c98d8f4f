package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses. RequestID echoes
// the X-Request-ID so a customer report can be matched to the logs.
type ErrorResponse struct {
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ErrorHandler recovers panics in later handlers. It must run before
// middleware.RequestLogger so the request id and logger are visible when the
// panic unwinds. Requests to chatPaths get the chat fallback reply with a
// 200, the same as any other chat failure; everything else gets a 500 that
// points the customer at the business phone.
func ErrorHandler(phone string, chatPaths ...string) gin.HandlerFunc {
	chat := make(map[string]bool, len(chatPaths))
	for _, p := range chatPaths {
		chat[p] = true
	}
	return func(c *gin.Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			reqID := c.GetString("requestId")
			requestLogger(c).Error("Unhandled panic",
				zap.Any("error", err),
				zap.String("path", c.Request.URL.Path),
				zap.String("requestId", reqID),
			)

			if chat[c.Request.URL.Path] {
				c.AbortWithStatusJSON(http.StatusOK, gin.H{"response": FallbackMessage(phone), "bookingCreated": nil})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message:   "Internal Server Error",
				Details:   FallbackMessage(phone),
				RequestID: reqID,
			})
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	reqID := c.GetString("requestId")
	requestLogger(c).Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details, RequestID: reqID})
}

func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

// FallbackMessage is the apology shown when an upstream dependency fails.
func FallbackMessage(phone string) string {
	return "I'm sorry, I'm having trouble responding right now. Please call us at " + phone + " and we'll be happy to help."
}
