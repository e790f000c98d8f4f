package ai

import (
	"context"
	"fmt"

	conversationRepo "washdesk/database/repository/conversation"
	"washdesk/models"
)

const DefaultHistoryLimit = 20

// HistoryLoader rebuilds the recent conversation of a session for the model.
type HistoryLoader struct {
	Repo  conversationRepo.ConversationRepository
	Limit int
}

func NewHistoryLoader(repo conversationRepo.ConversationRepository, limit int) *HistoryLoader {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryLoader{Repo: repo, Limit: limit}
}

// Load returns up to Limit most recent turns, oldest first. An unknown
// session yields an empty slice.
func (h *HistoryLoader) Load(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	turns, err := h.Repo.RecentTurns(ctx, sessionID, h.Limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(turns))
	for _, t := range turns {
		role := models.RoleUser
		if t.Role == models.RoleAssistant {
			role = models.RoleAssistant
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: t.Text})
	}
	return messages, nil
}
