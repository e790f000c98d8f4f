// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoint
	AIChatHandler gin.HandlerFunc

	// Form endpoints
	CreateBookingHandler gin.HandlerFunc
	SubmitContactHandler gin.HandlerFunc

	// Admin endpoints
	AdminHandler   *AdminHandler
	AdminJWTSecret string
}
