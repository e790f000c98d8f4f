package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	bookingRepo "washdesk/database/repository/booking"
	"washdesk/models"
	"washdesk/utils"

	"go.uber.org/zap"
)

const chatBookingNote = "Booked via AI chat assistant"

// ExtractionKey identifies one extraction event: the same session emitting
// the same payload maps to the same key.
func ExtractionKey(sessionID string, p models.BookingPayload) string {
	fields := p.Fields()
	h := sha256.New()
	h.Write([]byte(sessionID))
	for _, name := range models.RequiredBookingFields {
		h.Write([]byte{0x1f})
		h.Write([]byte(strings.ToLower(strings.TrimSpace(fields[name]))))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *DefaultBookingService) CommitExtraction(ctx context.Context, sessionID string, payload models.BookingPayload) (*models.Booking, error) {
	log := s.logger().With(zap.String("sessionId", sessionID))

	payload = payload.Trimmed()
	if err := utils.ValidateStruct(payload); err != nil {
		log.Info("discarding incomplete booking extraction", zap.Error(err))
		return nil, nil
	}

	key := ExtractionKey(sessionID, payload)
	if existing := s.replayFromLedger(ctx, log, key); existing != nil {
		return existing, nil
	}

	in := payload.Input()
	service := in.Service
	if svc, ok := s.Persona.FindService(service); ok {
		service = svc.ID
	}

	b := &models.Booking{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Service:       service,
		Date:          in.Date,
		Time:          in.Time,
		Address:       in.Address,
		Notes:         chatBookingNote,
		Status:        models.BookingStatusPending,
		Source:        models.BookingSourceChat,
		SessionID:     sessionID,
		ExtractionKey: key,
	}

	if _, err := s.Repo.Create(ctx, b); err != nil {
		if !errors.Is(err, bookingRepo.ErrDuplicateExtraction) {
			return nil, fmt.Errorf("commit chat booking: %w", err)
		}
		existing, getErr := s.Repo.GetByExtractionKey(ctx, key)
		if getErr != nil {
			return nil, fmt.Errorf("load existing chat booking: %w", getErr)
		}
		log.Info("booking extraction already committed", zap.String("bookingId", existing.ID))
		s.remember(ctx, log, key, existing.ID)
		return existing, nil
	}

	log.Info("chat booking created", zap.String("bookingId", b.ID), zap.String("service", b.Service))
	s.remember(ctx, log, key, b.ID)

	s.Notifier.BookingCreated(ctx, *b)
	return b, nil
}

func (s *DefaultBookingService) replayFromLedger(ctx context.Context, log *zap.Logger, key string) *models.Booking {
	if s.Ledger == nil {
		return nil
	}
	id, found, err := s.Ledger.Lookup(ctx, key)
	if err != nil {
		log.Warn("extraction ledger unavailable", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("ledger entry points at missing booking", zap.String("bookingId", id), zap.Error(err))
		return nil
	}
	log.Info("booking extraction replayed from ledger", zap.String("bookingId", id))
	return existing
}

func (s *DefaultBookingService) remember(ctx context.Context, log *zap.Logger, key, bookingID string) {
	if s.Ledger == nil {
		return
	}
	if err := s.Ledger.Remember(ctx, key, bookingID); err != nil {
		log.Warn("failed to record extraction in ledger", zap.Error(err))
	}
}
