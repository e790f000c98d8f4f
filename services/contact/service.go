package contact

import (
	"context"
	"fmt"
	"strings"

	contactRepo "washdesk/database/repository/contact"
	"washdesk/models"
	"washdesk/services/notification"
	"washdesk/utils"

	"go.uber.org/zap"
)

type ContactService interface {
	SubmitContact(ctx context.Context, input models.ContactInput) (*models.Contact, error)
	ListContacts(ctx context.Context, limit int) ([]models.Contact, error)
}

// DefaultContactService stores contact form messages and notifies the business.
type DefaultContactService struct {
	Repo     contactRepo.ContactRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger
}

func (s *DefaultContactService) SubmitContact(ctx context.Context, input models.ContactInput) (*models.Contact, error) {
	c := &models.Contact{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Service: strings.TrimSpace(input.Service),
		Message: strings.TrimSpace(input.Message),
		Status:  models.ContactStatusNew,
	}

	if err := utils.ValidateStruct(models.ContactInput{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Service: c.Service,
		Message: c.Message,
	}); err != nil {
		return nil, err
	}

	if _, err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("contact message stored", zap.String("contactId", c.ID))
	}

	s.Notifier.ContactReceived(ctx, *c)
	return c, nil
}

func (s *DefaultContactService) ListContacts(ctx context.Context, limit int) ([]models.Contact, error) {
	contacts, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}
