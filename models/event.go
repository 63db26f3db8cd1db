package models

import (
	"time"
)

// Event represents a scheduled event created by an organizer
type Event struct {
	ID                int       `json:"eventId" db:"event_id"`
	Title             string    `json:"title" db:"title" validate:"required"`
	Description       string    `json:"description" db:"description"`
	EventDate         Date      `json:"eventDate" db:"event_date"`
	VenueID           *int      `json:"venueId,omitempty" db:"venue_id"`
	CreatedBy         int       `json:"createdBy" db:"created_by"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	Venue             *Venue    `json:"venue,omitempty"`
	RegistrationCount *int      `json:"registrationCount,omitempty"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// IsOwnedBy reports whether the event was created by the given user
func (e *Event) IsOwnedBy(userID int) bool {
	return e.CreatedBy == userID
}
