package handlers

import (
	"net/http"

	"washdesk/models"
	"washdesk/services/booking"
	"washdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bookingReceivedMessage = "Booking request received! We'll contact you within 24 hours to confirm."

type BookingHandler struct {
	BookingSvc booking.BookingService
	Phone      string
}

func NewBookingHandler(svc booking.BookingService, phone string) *BookingHandler {
	return &BookingHandler{BookingSvc: svc, Phone: phone}
}

// CreateBooking handles the booking form.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if respondInvalid(c, err) {
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	b, err := h.BookingSvc.CreateBooking(c.Request.Context(), input)
	if err != nil {
		if respondInvalid(c, err) {
			return
		}
		logger.Error("Failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit booking. " + utils.FallbackMessage(h.Phone)})
		return
	}

	c.JSON(http.StatusCreated, models.BookingCreatedResponse{
		Success:   true,
		BookingID: b.ID,
		Message:   bookingReceivedMessage,
	})
}
