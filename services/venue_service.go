package services

import (
	"context"
	"strings"

	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"github.com/upb/eventflow/utils"
	"go.uber.org/zap"
)

// VenueInput carries the fields of a new venue
type VenueInput struct {
	Name     string
	Location string
	Capacity int
}

// VenueService manages organizer venues
type VenueService struct {
	venues repositories.VenueRepository
	logger *zap.Logger
}

// NewVenueService creates a new VenueService instance
func NewVenueService(venues repositories.VenueRepository, logger *zap.Logger) *VenueService {
	return &VenueService{venues: venues, logger: logger}
}

// Create stores a venue owned by createdBy
func (s *VenueService) Create(ctx context.Context, createdBy int, input VenueInput) (*models.Venue, error) {
	fields := map[string]string{}
	if err := utils.ValidateRequired(input.Name, "name"); err != nil {
		fields["name"] = err.Error()
	}
	if input.Capacity < 0 {
		fields["capacity"] = "capacity must not be negative"
	}
	if len(fields) > 0 {
		return nil, validationError(ErrInvalidVenue, fields)
	}

	venue := &models.Venue{
		Name:      strings.TrimSpace(input.Name),
		Location:  strings.TrimSpace(input.Location),
		Capacity:  input.Capacity,
		CreatedBy: createdBy,
	}
	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, WrapInternal("failed to create venue", err)
	}

	s.logger.Info("venue created", zap.Int("venue_id", venue.ID), zap.Int("created_by", createdBy))
	return venue, nil
}

// ListByOrganizer returns the venues created by organizerID
func (s *VenueService) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Venue, error) {
	venues, err := s.venues.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, WrapInternal("failed to list venues", err)
	}
	return venues, nil
}
