package notification

import (
	"context"

	"washdesk/models"
)

// AlertField is one name/value row of a chat-ops alert.
type AlertField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Alert is a structured message for the internal chat-ops channel.
type Alert struct {
	Title  string
	Color  int
	Fields []AlertField
	Footer string
}

// Email is a plain-text transactional email.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// AlertSender delivers alerts to the chat-ops channel.
type AlertSender interface {
	SendAlert(ctx context.Context, alert Alert) error
}

// Mailer delivers transactional email.
type Mailer interface {
	SendEmail(ctx context.Context, email Email) error
}

// NotificationService fans internal notifications out to every channel.
// Delivery is best effort: implementations log failures and never return
// them, so a committed booking is never affected by a channel outage.
type NotificationService interface {
	BookingCreated(ctx context.Context, booking models.Booking)
	ContactReceived(ctx context.Context, contact models.Contact)
}
