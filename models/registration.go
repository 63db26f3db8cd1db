package models

import (
	"time"
)

// Registration links an attendee to an event
type Registration struct {
	ID           int       `json:"regId" db:"reg_id"`
	UserID       int       `json:"userId" db:"user_id"`
	EventID      int       `json:"eventId" db:"event_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}

// TableName returns the table name for the Registration model
func (Registration) TableName() string {
	return "registrations"
}

// RegistrationDetails is a registration joined with either its event
// (attendee view) or its user (organizer view). Unused sides are omitted.
type RegistrationDetails struct {
	RegID        int       `json:"regId"`
	RegisteredAt time.Time `json:"registeredAt"`

	EventID     int    `json:"eventId,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	EventDate   *Date  `json:"eventDate,omitempty"`

	UserID   int    `json:"userId,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}
