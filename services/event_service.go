package services

import (
	"context"
	"errors"
	"strings"

	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"github.com/upb/eventflow/utils"
	"go.uber.org/zap"
)

// EventInput carries the writable fields of an event
type EventInput struct {
	Title       string
	Description string
	EventDate   models.Date
	VenueID     *int
}

// validate checks the input. Only Create requires a date; an update
// without one keeps the stored date.
func (in EventInput) validate(requireDate bool) error {
	fields := map[string]string{}
	if err := utils.ValidateRequired(in.Title, "title"); err != nil {
		fields["title"] = err.Error()
	}
	if requireDate && in.EventDate.IsZero() {
		fields["eventDate"] = "eventDate is required"
	}
	if in.VenueID != nil && *in.VenueID <= 0 {
		fields["venueId"] = "venueId must be a positive integer"
	}
	if len(fields) > 0 {
		return validationError(ErrInvalidEvent, fields)
	}
	return nil
}

// EventService manages events and answers ownership questions
type EventService struct {
	events repositories.EventRepository
	venues repositories.VenueRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewEventService creates a new EventService instance
func NewEventService(
	events repositories.EventRepository,
	venues repositories.VenueRepository,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		events: events,
		venues: venues,
		txMgr:  txMgr,
		logger: logger,
	}
}

// List returns all events, newest date first
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list events", err)
	}
	return events, nil
}

// Get returns a single event
func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapEventError("failed to get event", err)
	}
	return event, nil
}

// Create stores a new event owned by createdBy
func (s *EventService) Create(ctx context.Context, createdBy int, input EventInput) (*models.Event, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		EventDate:   input.EventDate,
		VenueID:     input.VenueID,
		CreatedBy:   createdBy,
	}

	created, err := WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Event, error) {
		if err := s.checkVenue(ctx, input.VenueID); err != nil {
			return nil, err
		}
		if err := s.events.Create(ctx, event); err != nil {
			return nil, mapEventError("failed to create event", err)
		}
		return event, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created", zap.Int("event_id", created.ID), zap.Int("created_by", createdBy))
	return created, nil
}

// Update replaces the writable fields of an event. A zero EventDate
// leaves the stored date unchanged.
// Ownership is checked by the caller via IsEventOwner.
func (s *EventService) Update(ctx context.Context, id int, input EventInput) (*models.Event, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}

	updated, err := WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) (*models.Event, error) {
		event, err := s.events.GetByID(ctx, id)
		if err != nil {
			return nil, mapEventError("failed to load event", err)
		}
		if err := s.checkVenue(ctx, input.VenueID); err != nil {
			return nil, err
		}

		event.Title = strings.TrimSpace(input.Title)
		event.Description = input.Description
		if !input.EventDate.IsZero() {
			event.EventDate = input.EventDate
		}
		event.VenueID = input.VenueID
		event.Venue = nil

		if err := s.events.Update(ctx, event); err != nil {
			return nil, mapEventError("failed to update event", err)
		}
		return event, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event updated", zap.Int("event_id", id))
	return updated, nil
}

// Delete removes an event and, by cascade, its registrations
func (s *EventService) Delete(ctx context.Context, id int) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return mapEventError("failed to delete event", err)
	}
	s.logger.Info("event deleted", zap.Int("event_id", id))
	return nil
}

// ListByOrganizer returns the organizer's events with registration counts
func (s *EventService) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error) {
	events, err := s.events.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, WrapInternal("failed to list organizer events", err)
	}
	return events, nil
}

// IsEventOwner reports whether userID created the event.
// A missing event yields ErrEventNotFound.
func (s *EventService) IsEventOwner(ctx context.Context, userID, eventID int) (bool, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return false, mapEventError("failed to get event", err)
	}
	return event.IsOwnedBy(userID), nil
}

func (s *EventService) checkVenue(ctx context.Context, venueID *int) error {
	if venueID == nil {
		return nil
	}
	if _, err := s.venues.GetByID(ctx, *venueID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrVenueNotFound
		}
		return WrapInternal("failed to get venue", err)
	}
	return nil
}

// mapEventError translates repository sentinels for event operations.
// A dangling foreign key on an event row can only be its venue.
func mapEventError(message string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrEventNotFound
	case errors.Is(err, repositories.ErrReferenceNotFound):
		return ErrVenueNotFound
	default:
		return WrapInternal(message, err)
	}
}
