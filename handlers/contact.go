package handlers

import (
	"net/http"

	"washdesk/models"
	"washdesk/services/contact"
	"washdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	ContactSvc contact.ContactService
	Phone      string
}

func NewContactHandler(svc contact.ContactService, phone string) *ContactHandler {
	return &ContactHandler{ContactSvc: svc, Phone: phone}
}

// SubmitContact handles the contact form.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	logger := getLogger(c)

	var input models.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if respondInvalid(c, err) {
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	ct, err := h.ContactSvc.SubmitContact(c.Request.Context(), input)
	if err != nil {
		if respondInvalid(c, err) {
			return
		}
		logger.Error("Failed to store contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message. " + utils.FallbackMessage(h.Phone)})
		return
	}

	c.JSON(http.StatusCreated, models.ContactCreatedResponse{
		Success:   true,
		ContactID: ct.ID,
		Message:   "Thanks for reaching out! We'll get back to you soon.",
	})
}
