package repositories

import (
	"context"

	"github.com/upb/eventflow/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create inserts a user and sets its generated ID
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int) (*models.User, error)

	// GetByEmail retrieves a user by email, including the password hash
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// EventRepository handles event data operations
type EventRepository interface {
	// List retrieves all events with their venues, newest event date first
	List(ctx context.Context) ([]*models.Event, error)

	// GetByID retrieves an event and its venue
	GetByID(ctx context.Context, id int) (*models.Event, error)

	// Create inserts an event and sets its generated ID
	Create(ctx context.Context, event *models.Event) error

	// Update replaces the editable fields of an event
	Update(ctx context.Context, event *models.Event) error

	// Delete deletes an event
	Delete(ctx context.Context, id int) error

	// ListByOrganizer retrieves events created by a user with registration counts
	ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error)
}

// VenueRepository handles venue data operations
type VenueRepository interface {
	// Create inserts a venue and sets its generated ID
	Create(ctx context.Context, venue *models.Venue) error

	// GetByID retrieves a venue by ID
	GetByID(ctx context.Context, id int) (*models.Venue, error)

	// ListByOrganizer retrieves venues created by a user
	ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Venue, error)
}

// RegistrationRepository handles event registration data operations
type RegistrationRepository interface {
	// Create inserts a registration and sets its generated ID and timestamp
	Create(ctx context.Context, registration *models.Registration) error

	// ListByUser retrieves the registrations of a user
	ListByUser(ctx context.Context, userID int) ([]*models.Registration, error)

	// ListDetailsByUser retrieves a user's registrations joined with their events
	ListDetailsByUser(ctx context.Context, userID int) ([]*models.RegistrationDetails, error)

	// ListByEvent retrieves the registrations for an event
	ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error)

	// ListDetailsByEvent retrieves an event's registrations joined with their attendees
	ListDetailsByEvent(ctx context.Context, eventID int) ([]*models.RegistrationDetails, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users         UserRepository
	Events        EventRepository
	Venues        VenueRepository
	Registrations RegistrationRepository
}
