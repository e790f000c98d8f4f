package handlers

import (
	"net/http"

	"washdesk/models"
	ai "washdesk/services/intelligence"
	"washdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler exposes the conversational booking assistant.
type AIHandler struct {
	ChatSvc ai.ChatService
	Phone   string
}

func NewDefaultAIHandler(svc ai.ChatService, phone string) *AIHandler {
	return &AIHandler{ChatSvc: svc, Phone: phone}
}

// HandleAIRequest answers one chat message. Input errors are 400; every
// other failure is answered with a fallback reply, never a 5xx.
func (h *AIHandler) HandleAIRequest(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid chat request", zap.Error(err))
		if respondInvalid(c, err) {
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: message and sessionId are required"})
		return
	}

	resp, err := h.ChatSvc.HandleChat(c.Request.Context(), req)
	if err != nil {
		if respondInvalid(c, err) {
			return
		}
		logger.Error("Chat request failed", zap.Error(err))
		c.JSON(http.StatusOK, models.ChatResponse{Response: utils.FallbackMessage(h.Phone)})
		return
	}

	c.JSON(http.StatusOK, resp)
}
