// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"washdesk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Complete sends the conversation as a chat session: system messages become
// the system instruction, the last user message is sent, the rest is history.
func (g *GeminiClient) Complete(ctx context.Context, messages []models.ChatMessage, opts GenerationOptions) (string, error) {
	system, history, last, err := splitForGemini(messages)
	if err != nil {
		return "", err
	}

	// GenerativeModel carries per-call settings, so build one per request.
	model := g.client.GenerativeModel(g.modelName)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	model.SetTemperature(opts.Temperature)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// splitForGemini maps chat roles onto Gemini's user/model contents. History
// must open with a user turn, so leading model turns are dropped.
func splitForGemini(messages []models.ChatMessage) (string, []*genai.Content, string, error) {
	var systemParts []string
	var rest []models.ChatMessage
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	if len(rest) == 0 || rest[len(rest)-1].Role != models.RoleUser {
		return "", nil, "", errors.New("gemini: conversation must end with a user message")
	}

	last := rest[len(rest)-1].Content
	var history []*genai.Content
	for _, m := range rest[:len(rest)-1] {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		if len(history) == 0 && role == "model" {
			continue
		}
		// Gemini expects user and model turns to alternate; a turn left
		// without its reply joins the next turn of the same role.
		if n := len(history); n > 0 && history[n-1].Role == role {
			history[n-1].Parts = append(history[n-1].Parts, genai.Text(m.Content))
			continue
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	// The outgoing message is itself a user turn.
	if n := len(history); n > 0 && history[n-1].Role == "user" {
		var earlier []string
		for _, p := range history[n-1].Parts {
			if t, ok := p.(genai.Text); ok {
				earlier = append(earlier, string(t))
			}
		}
		last = strings.Join(append(earlier, last), "\n\n")
		history = history[:n-1]
	}
	return strings.Join(systemParts, "\n\n"), history, last, nil
}
