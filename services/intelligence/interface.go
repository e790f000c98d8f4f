// File: services/intelligence/interface.go
package ai

import (
	"context"

	"washdesk/models"
)

// GenerationOptions bounds a single model call.
type GenerationOptions struct {
	MaxTokens   int
	Temperature float32
}

// ModelClient is the language model: messages in, assistant text out.
type ModelClient interface {
	Complete(ctx context.Context, messages []models.ChatMessage, opts GenerationOptions) (string, error)
}

// ChatService runs one chat request end to end. The only error it returns
// is a *utils.ValidationError for bad client input; every upstream failure
// is turned into a fallback reply.
type ChatService interface {
	HandleChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}
