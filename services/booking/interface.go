package booking

import (
	"context"

	"washdesk/config"
	bookingRepo "washdesk/database/repository/booking"
	"washdesk/models"
	"washdesk/services/notification"

	"go.uber.org/zap"
)

// BookingService creates bookings from the booking form and from chat
// extractions, using the same persist-then-notify sequence for both.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	// CommitExtraction turns an extracted chat payload into a booking. It
	// returns (nil, nil) when the payload is incomplete.
	CommitExtraction(ctx context.Context, sessionID string, payload models.BookingPayload) (*models.Booking, error)
	ListBookings(ctx context.Context, limit int) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Notifier notification.NotificationService
	Ledger   ExtractionLedger
	Persona  config.Persona
	Logger   *zap.Logger
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
