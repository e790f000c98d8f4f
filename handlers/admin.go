// File: handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"washdesk/services/booking"
	"washdesk/services/contact"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// AdminHandler serves the back-office listing endpoints.
type AdminHandler struct {
	BookingService booking.BookingService
	ContactService contact.ContactService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bs booking.BookingService, cs contact.ContactService) *AdminHandler {
	return &AdminHandler{
		BookingService: bs,
		ContactService: cs,
	}
}

// GetAllBookingsHandler returns the newest bookings first.
func (ah *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	limit, ok := listLimit(c)
	if !ok {
		return
	}
	bookings, err := ah.BookingService.ListBookings(c.Request.Context(), limit)
	if err != nil {
		zap.L().Error("Failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetAllContactsHandler returns the newest contact messages first.
func (ah *AdminHandler) GetAllContactsHandler(c *gin.Context) {
	limit, ok := listLimit(c)
	if !ok {
		return
	}
	contacts, err := ah.ContactService.ListContacts(c.Request.Context(), limit)
	if err != nil {
		zap.L().Error("Failed to fetch contacts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func listLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, true
}
