package ai

import (
	"context"
	"fmt"
	"strings"

	"washdesk/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewModelClient builds the configured model backend.
func NewModelClient(ctx context.Context, cfg config.Config) (ModelClient, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "", ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
