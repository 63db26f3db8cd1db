package models

// Venue represents a location events can be scheduled at
type Venue struct {
	ID        int    `json:"venueId" db:"venue_id"`
	Name      string `json:"name" db:"name"`
	Location  string `json:"location,omitempty" db:"location"`
	Capacity  int    `json:"capacity" db:"capacity"`
	CreatedBy int    `json:"createdBy,omitempty" db:"created_by"`
}

// TableName returns the table name for the Venue model
func (Venue) TableName() string {
	return "venues"
}
