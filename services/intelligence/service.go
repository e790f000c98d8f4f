package ai

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"washdesk/config"
	conversationRepo "washdesk/database/repository/conversation"
	"washdesk/models"
	"washdesk/services/booking"
	"washdesk/utils"

	"go.uber.org/zap"
)

const (
	bookingReceivedMsg = "Your booking request has been received! We'll be in touch shortly to confirm."

	// Sent when the reply was nothing but a booking block we could not commit.
	detailsNeededMsg = "Thanks! Before I lock that in, could you confirm your name, email, phone, the service you'd like, your preferred date and time, and the service address?"
)

// ChatOptions bounds each chat request.
type ChatOptions struct {
	MaxTokens       int
	Temperature     float32
	ModelTimeout    time.Duration
	MaxMessageChars int
}

// DefaultChatService wires history, prompt, model, turn storage, extraction
// and booking commit for one request at a time. It keeps no state between
// requests.
type DefaultChatService struct {
	history  *HistoryLoader
	turns    conversationRepo.ConversationRepository
	model    ModelClient
	bookings booking.BookingService
	persona  config.Persona
	opts     ChatOptions
	logger   *zap.Logger
}

func NewDefaultChatService(
	history *HistoryLoader,
	turns conversationRepo.ConversationRepository,
	model ModelClient,
	bookings booking.BookingService,
	persona config.Persona,
	opts ChatOptions,
	logger *zap.Logger,
) *DefaultChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultChatService{
		history:  history,
		turns:    turns,
		model:    model,
		bookings: bookings,
		persona:  persona,
		opts:     opts,
		logger:   logger,
	}
}

func (s *DefaultChatService) HandleChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	sessionID := strings.TrimSpace(req.SessionID)
	if err := s.validate(message, sessionID); err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("sessionId", sessionID))

	history, err := s.history.Load(ctx, sessionID)
	if err != nil {
		return s.fallback(log, "history load failed", err), nil
	}

	prompt := AssemblePrompt(s.persona.Preamble, history, message)

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return s.fallback(log, "model call failed", err), nil
	}

	// Both turns go out together; see AppendExchange for the atomicity mode.
	if err := s.turns.AppendExchange(ctx, sessionID, message, raw); err != nil {
		return s.fallback(log, "turn append failed", err), nil
	}

	extraction := ParseExtraction(raw)
	if extraction.Err != nil {
		log.Warn("malformed booking extraction", zap.Error(extraction.Err))
	}

	resp := &models.ChatResponse{Response: extraction.Reply}
	if extraction.Payload != nil {
		b, err := s.bookings.CommitExtraction(ctx, sessionID, *extraction.Payload)
		if err != nil {
			return s.fallback(log, "booking commit failed", err), nil
		}
		resp.BookingCreated = b
	}

	// An empty stripped reply means the model sent only a booking block.
	if resp.Response == "" {
		if resp.BookingCreated != nil {
			resp.Response = bookingReceivedMsg
		} else {
			resp.Response = detailsNeededMsg
		}
	}
	return resp, nil
}

func (s *DefaultChatService) validate(message, sessionID string) error {
	if err := utils.ValidateStruct(models.ChatRequest{Message: message, SessionID: sessionID}); err != nil {
		return err
	}
	if s.opts.MaxMessageChars > 0 && utf8.RuneCountInString(message) > s.opts.MaxMessageChars {
		return &utils.ValidationError{Fields: []string{"message"}, Reason: "fields too long"}
	}
	return nil
}

func (s *DefaultChatService) complete(ctx context.Context, prompt []models.ChatMessage) (string, error) {
	if s.opts.ModelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ModelTimeout)
		defer cancel()
	}
	raw, err := s.model.Complete(ctx, prompt, GenerationOptions{
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("model returned an empty reply")
	}
	return raw, nil
}

func (s *DefaultChatService) fallback(log *zap.Logger, msg string, err error) *models.ChatResponse {
	log.Error(msg, zap.Error(err))
	return &models.ChatResponse{Response: utils.FallbackMessage(s.persona.Phone)}
}
