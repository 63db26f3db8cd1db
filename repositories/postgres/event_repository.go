package postgres

import (
	"context"
	"database/sql"

	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"go.uber.org/zap"
)

const eventSelect = `
	SELECT e.event_id, e.title, e.description, e.event_date, e.venue_id,
	       e.created_by, e.created_at, v.name, v.location, v.capacity
	FROM events e
	LEFT JOIN venues v ON e.venue_id = v.venue_id
`

// EventRepository implements the repositories.EventRepository interface
type EventRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB, logger *zap.Logger) repositories.EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves all events, newest event date first
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	query := eventSelect + ` ORDER BY e.event_date DESC, e.event_id DESC`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("query events", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows, false)
		if err != nil {
			return nil, mapError("scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate event rows", err)
	}

	return events, nil
}

// GetByID retrieves an event and its venue
func (r *EventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := eventSelect + ` WHERE e.event_id = $1`

	event, err := scanEvent(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id), false)
	if err != nil {
		return nil, mapError("get event", err)
	}
	return event, nil
}

// Create inserts an event and sets its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, event_date, venue_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING event_id, created_at
	`

	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.EventDate,
		nullableInt(event.VenueID),
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return mapError("create event", err)
	}

	r.logger.Debug("event created", zap.Int("id", event.ID), zap.Int("created_by", event.CreatedBy))
	return nil
}

// Update replaces title, description, date and venue of an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $2,
		    description = $3,
		    event_date = $4,
		    venue_id = $5
		WHERE event_id = $1
	`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.EventDate,
		nullableInt(event.VenueID),
	)
	if err != nil {
		return mapError("update event", err)
	}
	if err := checkAffected("update event", result); err != nil {
		return err
	}

	r.logger.Debug("event updated", zap.Int("id", event.ID))
	return nil
}

// Delete deletes an event; its registrations cascade
func (r *EventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE event_id = $1`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return mapError("delete event", err)
	}
	if err := checkAffected("delete event", result); err != nil {
		return err
	}

	r.logger.Debug("event deleted", zap.Int("id", id))
	return nil
}

// ListByOrganizer retrieves events created by a user with their registration counts
func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error) {
	query := `
		SELECT e.event_id, e.title, e.description, e.event_date, e.venue_id,
		       e.created_by, e.created_at, v.name, v.location, v.capacity,
		       (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.event_id) AS registration_count
		FROM events e
		LEFT JOIN venues v ON e.venue_id = v.venue_id
		WHERE e.created_by = $1
		ORDER BY e.event_date DESC, e.event_id DESC
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, mapError("query organizer events", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows, true)
		if err != nil {
			return nil, mapError("scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate event rows", err)
	}

	return events, nil
}

// scanEvent reads one eventSelect row, plus a trailing count column when withCount is set
func scanEvent(row rowScanner, withCount bool) (*models.Event, error) {
	var (
		event         models.Event
		description   sql.NullString
		venueID       sql.NullInt64
		venueName     sql.NullString
		venueLocation sql.NullString
		venueCapacity sql.NullInt64
		count         int
	)

	dest := []interface{}{
		&event.ID,
		&event.Title,
		&description,
		&event.EventDate,
		&venueID,
		&event.CreatedBy,
		&event.CreatedAt,
		&venueName,
		&venueLocation,
		&venueCapacity,
	}
	if withCount {
		dest = append(dest, &count)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	event.Description = description.String
	event.VenueID = intPtr(venueID)
	if venueID.Valid && venueName.Valid {
		event.Venue = &models.Venue{
			ID:       int(venueID.Int64),
			Name:     venueName.String,
			Location: venueLocation.String,
			Capacity: int(venueCapacity.Int64),
		}
	}
	if withCount {
		event.RegistrationCount = &count
	}

	return &event, nil
}
