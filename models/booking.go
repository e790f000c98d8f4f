package models

import (
	"strings"
	"time"
)

const (
	BookingStatusPending = "pending"

	BookingSourceWeb  = "web"
	BookingSourceChat = "chat"
)

// RequiredBookingFields lists the fields every booking must carry, in the
// order they are presented to customers and to the assistant.
var RequiredBookingFields = []string{"name", "email", "phone", "service", "date", "time", "address"}

// Booking represents a persisted service request.
type Booking struct {
	ID            string    `bson:"id" json:"id"`                                   // Assigned by the repository at insert time
	Name          string    `bson:"name" json:"name"`                               // Customer full name
	Email         string    `bson:"email" json:"email"`                             // Customer email, used as reply-to
	Phone         string    `bson:"phone" json:"phone"`                             // Customer phone number
	Service       string    `bson:"service" json:"service"`                         // Catalog id, or free text from chat
	Date          string    `bson:"date" json:"date"`                               // Requested date, usually "YYYY-MM-DD"
	Time          string    `bson:"time" json:"time"`                               // Requested window (e.g. "morning")
	Address       string    `bson:"address" json:"address"`                         // Service address
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`         // Free-form notes
	Status        string    `bson:"status" json:"status"`                           // Always "pending" at creation
	Source        string    `bson:"source" json:"source"`                           // "web" or "chat"
	SessionID     string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"` // Chat session that produced the booking
	ExtractionKey string    `bson:"extractionKey,omitempty" json:"-"`               // Idempotency key of the chat extraction
	CreatedAt     time.Time `bson:"createdAt" json:"created_at"`                    // Insert timestamp
}

// BookingInput is the body accepted by POST /api/booking.
type BookingInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Service string `json:"service" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

// BookingPayload is the structured record the assistant emits in-band once it
// has gathered every required field. It is never stored on its own.
type BookingPayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Service string `json:"service" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Fields returns the payload as a field-name keyed map.
func (p BookingPayload) Fields() map[string]string {
	return map[string]string{
		"name":    p.Name,
		"email":   p.Email,
		"phone":   p.Phone,
		"service": p.Service,
		"date":    p.Date,
		"time":    p.Time,
		"address": p.Address,
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p BookingPayload) Trimmed() BookingPayload {
	return BookingPayload{
		Name:    strings.TrimSpace(p.Name),
		Email:   strings.TrimSpace(p.Email),
		Phone:   strings.TrimSpace(p.Phone),
		Service: strings.TrimSpace(p.Service),
		Date:    strings.TrimSpace(p.Date),
		Time:    strings.TrimSpace(p.Time),
		Address: strings.TrimSpace(p.Address),
	}
}

// Input converts the payload into the shape used by the direct booking path.
func (p BookingPayload) Input() BookingInput {
	return BookingInput{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Service: p.Service,
		Date:    p.Date,
		Time:    p.Time,
		Address: p.Address,
	}
}

// BookingCreatedResponse is returned by POST /api/booking.
type BookingCreatedResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
}
