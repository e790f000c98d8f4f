package routes

import (
	"net/http"
	"time"

	"washdesk/handlers"
	"washdesk/middleware"
	"washdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsConfig = cors.Config{
	AllowAllOrigins: true,
	AllowMethods:    []string{"GET", "POST", "OPTIONS"},
	AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
	ExposeHeaders:   []string{"Content-Length"},
	MaxAge:          12 * time.Hour,
}

// RegisterChatRoutes registers the conversational assistant endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/chat", hb.AIChatHandler)
}

// RegisterFormRoutes registers the public booking and contact forms.
func RegisterFormRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/booking", hb.CreateBookingHandler)
		api.POST("/contact", hb.SubmitContactHandler)
	}
}

// RegisterAdminRoutes sets up the listing endpoints behind admin auth.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(hb.AdminJWTSecret))
		adminGroup.GET("/bookings", hb.AdminHandler.GetAllBookingsHandler)
		adminGroup.GET("/contacts", hb.AdminHandler.GetAllContactsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterPreflightRoute answers OPTIONS on any path. Requests carrying an
// Origin header are already answered by the CORS middleware.
func RegisterPreflightRoute(r *gin.Engine) {
	r.OPTIONS("/*path", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Authorization, Content-Type")
		c.Status(http.StatusNoContent)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Global middleware must be in place before any route is added.
	r.Use(cors.New(corsConfig))

	RegisterChatRoutes(r, hb)
	RegisterFormRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterPreflightRoute(r)
}
