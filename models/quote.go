package models

import "time"

// QuoteRequest is an inbound quote-form submission. It is persisted before
// the email send so a mailer outage never loses the lead.
type QuoteRequest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address"`
	Message   string    `json:"message,omitempty"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}
