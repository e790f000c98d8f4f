package models

import "time"

const ContactStatusNew = "new"

// Contact is a message left through the contact form.
type Contact struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Service   string    `bson:"service,omitempty" json:"service,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// ContactInput is the body accepted by POST /api/contact.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message" binding:"required"`
}

type ContactCreatedResponse struct {
	Success   bool   `json:"success"`
	ContactID string `json:"contactId"`
	Message   string `json:"message"`
}
