package models

import "time"

// Markers delimiting the booking payload inside assistant text. The persona
// preamble instructs the model to use exactly these strings.
const (
	BookingDataBegin = "###BOOKING_DATA###"
	BookingDataEnd   = "###END_BOOKING###"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one immutable message of a conversation.
type ChatTurn struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	Role      string    `bson:"role" json:"role"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ChatMessage is a turn reduced to what the model sees.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body accepted by POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId" binding:"required,max=128"`
}

// ChatResponse is what the chat endpoint returns. BookingCreated is null
// unless this turn committed (or replayed) a booking.
type ChatResponse struct {
	Response       string   `json:"response"`
	BookingCreated *Booking `json:"bookingCreated"`
}
