package ai

import "washdesk/models"

// AssemblePrompt builds the model input: system preamble, history in order,
// then the new user message.
func AssemblePrompt(preamble string, history []models.ChatMessage, userMessage string) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: preamble})
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: userMessage})
	return messages
}
