package booking

import (
	"context"
	"fmt"
	"strings"

	"washdesk/models"
	"washdesk/utils"

	"go.uber.org/zap"
)

// CreateBooking validates a booking form submission, stores it and notifies
// the business.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	input = trimInput(input)
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	svc, _ := s.Persona.FindService(input.Service)
	b := &models.Booking{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Service: svc.ID,
		Date:    input.Date,
		Time:    input.Time,
		Address: input.Address,
		Notes:   input.Notes,
		Status:  models.BookingStatusPending,
		Source:  models.BookingSourceWeb,
	}

	if _, err := s.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.logger().Info("booking created", zap.String("bookingId", b.ID), zap.String("service", b.Service))

	s.Notifier.BookingCreated(ctx, *b)
	return b, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	bookings, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) validateInput(input models.BookingInput) error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if _, ok := s.Persona.FindService(input.Service); !ok {
		return &utils.ValidationError{Fields: []string{"service"}, Reason: "invalid fields"}
	}
	return nil
}

func trimInput(in models.BookingInput) models.BookingInput {
	return models.BookingInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Service: strings.TrimSpace(in.Service),
		Date:    strings.TrimSpace(in.Date),
		Time:    strings.TrimSpace(in.Time),
		Address: strings.TrimSpace(in.Address),
		Notes:   strings.TrimSpace(in.Notes),
	}
}
