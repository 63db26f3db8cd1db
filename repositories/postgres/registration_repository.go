package postgres

import (
	"context"

	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"go.uber.org/zap"
)

// RegistrationRepository implements the repositories.RegistrationRepository interface
type RegistrationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *DB, logger *zap.Logger) repositories.RegistrationRepository {
	return &RegistrationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a registration. A repeat registration for the same
// user and event yields repositories.ErrDuplicate; an unknown user or
// event yields repositories.ErrReferenceNotFound.
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	query := `
		INSERT INTO registrations (user_id, event_id)
		VALUES ($1, $2)
		RETURNING reg_id, registered_at
	`

	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query,
		registration.UserID,
		registration.EventID,
	).Scan(&registration.ID, &registration.RegisteredAt)
	if err != nil {
		return mapError("create registration", err)
	}

	r.logger.Debug("registration created",
		zap.Int("id", registration.ID),
		zap.Int("user_id", registration.UserID),
		zap.Int("event_id", registration.EventID))
	return nil
}

// ListByUser retrieves the registrations of a user
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int) ([]*models.Registration, error) {
	query := `
		SELECT reg_id, user_id, event_id, registered_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`
	return r.listRegistrations(ctx, query, userID)
}

// ListByEvent retrieves the registrations for an event
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error) {
	query := `
		SELECT reg_id, user_id, event_id, registered_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at
	`
	return r.listRegistrations(ctx, query, eventID)
}

func (r *RegistrationRepository) listRegistrations(ctx context.Context, query string, id int) ([]*models.Registration, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, id)
	if err != nil {
		return nil, mapError("query registrations", err)
	}
	defer rows.Close()

	registrations := []*models.Registration{}
	for rows.Next() {
		reg := &models.Registration{}
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt); err != nil {
			return nil, mapError("scan registration", err)
		}
		registrations = append(registrations, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate registration rows", err)
	}

	return registrations, nil
}

// ListDetailsByUser retrieves a user's registrations joined with their events
func (r *RegistrationRepository) ListDetailsByUser(ctx context.Context, userID int) ([]*models.RegistrationDetails, error) {
	query := `
		SELECT r.reg_id, r.registered_at, e.event_id, e.title, COALESCE(e.description, ''), e.event_date
		FROM registrations r
		JOIN events e ON r.event_id = e.event_id
		WHERE r.user_id = $1
		ORDER BY e.event_date DESC
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError("query user registrations", err)
	}
	defer rows.Close()

	details := []*models.RegistrationDetails{}
	for rows.Next() {
		d := &models.RegistrationDetails{}
		var eventDate models.Date
		if err := rows.Scan(&d.RegID, &d.RegisteredAt, &d.EventID, &d.Title, &d.Description, &eventDate); err != nil {
			return nil, mapError("scan registration details", err)
		}
		d.EventDate = &eventDate
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate registration rows", err)
	}

	return details, nil
}

// ListDetailsByEvent retrieves an event's registrations joined with their attendees
func (r *RegistrationRepository) ListDetailsByEvent(ctx context.Context, eventID int) ([]*models.RegistrationDetails, error) {
	query := `
		SELECT r.reg_id, r.registered_at, u.user_id, u.full_name, u.email
		FROM registrations r
		JOIN users u ON r.user_id = u.user_id
		WHERE r.event_id = $1
		ORDER BY r.registered_at
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, mapError("query event registrations", err)
	}
	defer rows.Close()

	details := []*models.RegistrationDetails{}
	for rows.Next() {
		d := &models.RegistrationDetails{}
		if err := rows.Scan(&d.RegID, &d.RegisteredAt, &d.UserID, &d.FullName, &d.Email); err != nil {
			return nil, mapError("scan registration details", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate registration rows", err)
	}

	return details, nil
}
