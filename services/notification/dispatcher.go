package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"washdesk/config"
	"washdesk/models"

	"go.uber.org/zap"
)

const (
	colorWebBooking  = 0x22C55E
	colorChatBooking = 0x8B5CF6
	colorContact     = 0x3B82F6
)

// DefaultNotificationService sends every notification to the chat-ops
// channel and by email, concurrently, on a context detached from the
// caller's cancellation.
type DefaultNotificationService struct {
	Alerts  AlertSender
	Mail    Mailer
	Persona config.Persona
	Inbox   []string
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewDefaultNotificationService(
	alerts AlertSender,
	mail Mailer,
	persona config.Persona,
	inbox string,
	timeout time.Duration,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if alerts == nil || mail == nil {
		return nil, fmt.Errorf("notification service initialization error: alert sender or mailer is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var to []string
	for _, addr := range strings.Split(inbox, ",") {
		if a := strings.TrimSpace(addr); a != "" {
			to = append(to, a)
		}
	}
	return &DefaultNotificationService{
		Alerts:  alerts,
		Mail:    mail,
		Persona: persona,
		Inbox:   to,
		Timeout: timeout,
		Logger:  logger,
	}, nil
}

func (s *DefaultNotificationService) BookingCreated(ctx context.Context, b models.Booking) {
	title := "New Booking Request"
	color := colorWebBooking
	if b.Source == models.BookingSourceChat {
		title = "New Booking via AI Chat"
		color = colorChatBooking
	}

	alert := Alert{
		Title: title,
		Color: color,
		Fields: []AlertField{
			{Name: "Name", Value: b.Name, Inline: true},
			{Name: "Phone", Value: b.Phone, Inline: true},
			{Name: "Email", Value: b.Email, Inline: true},
			{Name: "Service", Value: s.Persona.ServiceName(b.Service), Inline: true},
			{Name: "Date", Value: b.Date, Inline: true},
			{Name: "Time", Value: b.Time, Inline: true},
			{Name: "Address", Value: b.Address},
			{Name: "Notes", Value: orDash(b.Notes)},
		},
		Footer: fmt.Sprintf("Booking ID: %s", b.ID),
	}

	email := Email{
		To:      s.Inbox,
		ReplyTo: b.Email,
		Subject: fmt.Sprintf("New Booking: %s - %s", s.Persona.ServiceName(b.Service), b.Name),
		Text: strings.Join([]string{
			title,
			"",
			"Name: " + b.Name,
			"Email: " + b.Email,
			"Phone: " + b.Phone,
			"Service: " + s.Persona.ServiceName(b.Service),
			"Date: " + b.Date,
			"Time: " + b.Time,
			"Address: " + b.Address,
			"Notes: " + orDash(b.Notes),
			"",
			"Booking ID: " + b.ID,
		}, "\n"),
	}

	s.dispatch(ctx, alert, email, zap.String("bookingId", b.ID), zap.String("source", b.Source))
}

func (s *DefaultNotificationService) ContactReceived(ctx context.Context, c models.Contact) {
	alert := Alert{
		Title: "New Contact Message",
		Color: colorContact,
		Fields: []AlertField{
			{Name: "Name", Value: c.Name, Inline: true},
			{Name: "Email", Value: c.Email, Inline: true},
			{Name: "Phone", Value: orDash(c.Phone), Inline: true},
			{Name: "Service", Value: orDash(s.Persona.ServiceName(c.Service))},
			{Name: "Message", Value: c.Message},
		},
		Footer: fmt.Sprintf("Contact ID: %s", c.ID),
	}

	email := Email{
		To:      s.Inbox,
		ReplyTo: c.Email,
		Subject: fmt.Sprintf("New Contact: %s", c.Name),
		Text: strings.Join([]string{
			"New contact form submission",
			"",
			"Name: " + c.Name,
			"Email: " + c.Email,
			"Phone: " + orDash(c.Phone),
			"Service: " + orDash(s.Persona.ServiceName(c.Service)),
			"",
			c.Message,
			"",
			"Contact ID: " + c.ID,
		}, "\n"),
	}

	s.dispatch(ctx, alert, email, zap.String("contactId", c.ID))
}

// dispatch sends both notifications and waits for them. Errors are logged
// and dropped.
func (s *DefaultNotificationService) dispatch(ctx context.Context, alert Alert, email Email, fields ...zap.Field) {
	ctx = context.WithoutCancel(ctx)
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.Alerts.SendAlert(ctx, alert); err != nil {
			s.Logger.Warn("chat-ops notification failed", withError(fields, err)...)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.Mail.SendEmail(ctx, email); err != nil {
			s.Logger.Warn("email notification failed", withError(fields, err)...)
		}
	}()
	wg.Wait()
}

func withError(fields []zap.Field, err error) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	out = append(out, fields...)
	return append(out, zap.Error(err))
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
