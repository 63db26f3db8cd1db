package postgres

import (
	"context"
	"database/sql"

	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"go.uber.org/zap"
)

// VenueRepository implements the repositories.VenueRepository interface
type VenueRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *DB, logger *zap.Logger) repositories.VenueRepository {
	return &VenueRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a venue and sets its generated ID
func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, location, capacity, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING venue_id
	`

	var location interface{}
	if venue.Location != "" {
		location = venue.Location
	}

	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query,
		venue.Name,
		location,
		venue.Capacity,
		venue.CreatedBy,
	).Scan(&venue.ID)
	if err != nil {
		return mapError("create venue", err)
	}

	r.logger.Debug("venue created", zap.Int("id", venue.ID), zap.Int("created_by", venue.CreatedBy))
	return nil
}

// GetByID retrieves a venue by ID
func (r *VenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT venue_id, name, location, capacity, created_by FROM venues WHERE venue_id = $1`

	venue, err := scanVenue(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("get venue", err)
	}
	return venue, nil
}

// ListByOrganizer retrieves venues created by a user
func (r *VenueRepository) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Venue, error) {
	query := `
		SELECT venue_id, name, location, capacity, created_by
		FROM venues
		WHERE created_by = $1
		ORDER BY name
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, mapError("query venues", err)
	}
	defer rows.Close()

	venues := []*models.Venue{}
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, mapError("scan venue", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate venue rows", err)
	}

	return venues, nil
}

func scanVenue(row rowScanner) (*models.Venue, error) {
	var (
		venue     models.Venue
		location  sql.NullString
		createdBy sql.NullInt64
	)
	if err := row.Scan(&venue.ID, &venue.Name, &location, &venue.Capacity, &createdBy); err != nil {
		return nil, err
	}
	venue.Location = location.String
	venue.CreatedBy = int(createdBy.Int64)
	return &venue, nil
}
