package services

import (
	"context"
	"errors"

	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"go.uber.org/zap"
)

// RegistrationService manages event registrations
type RegistrationService struct {
	registrations repositories.RegistrationRepository
	events        repositories.EventRepository
	txMgr         repositories.TransactionManager
	logger        *zap.Logger
}

// NewRegistrationService creates a new RegistrationService instance
func NewRegistrationService(
	registrations repositories.RegistrationRepository,
	events repositories.EventRepository,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		txMgr:         txMgr,
		logger:        logger,
	}
}

// Register signs callerID up for an event. requestedUserID is the user id
// named in the request body, if any; it must equal callerID.
func (s *RegistrationService) Register(ctx context.Context, callerID, eventID int, requestedUserID *int) (*models.Registration, error) {
	if requestedUserID != nil && *requestedUserID != callerID {
		s.logger.Warn("registration user mismatch",
			zap.Int("caller_id", callerID),
			zap.Int("requested_user_id", *requestedUserID))
		return nil, ErrRegistrationUserMismatch
	}

	reg := &models.Registration{UserID: callerID, EventID: eventID}
	err := WithTransaction(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) error {
		if _, err := s.events.GetByID(ctx, eventID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEventNotFound
			}
			return WrapInternal("failed to get event", err)
		}

		if err := s.registrations.Create(ctx, reg); err != nil {
			switch {
			case errors.Is(err, repositories.ErrDuplicate):
				return ErrAlreadyRegistered
			case errors.Is(err, repositories.ErrReferenceNotFound):
				return ErrEventNotFound
			default:
				return WrapInternal("failed to create registration", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered for event",
		zap.Int("registration_id", reg.ID),
		zap.Int("user_id", callerID),
		zap.Int("event_id", eventID))
	return reg, nil
}

// ListDetailsByUser returns a user's registrations with event details
func (s *RegistrationService) ListDetailsByUser(ctx context.Context, userID int) ([]*models.RegistrationDetails, error) {
	details, err := s.registrations.ListDetailsByUser(ctx, userID)
	if err != nil {
		return nil, WrapInternal("failed to list user registrations", err)
	}
	return details, nil
}

// ListByEvent returns the plain registrations of an event
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error) {
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, WrapInternal("failed to list event registrations", err)
	}
	return regs, nil
}

// ListDetailsByEvent returns an event's registrations with attendee details
func (s *RegistrationService) ListDetailsByEvent(ctx context.Context, eventID int) ([]*models.RegistrationDetails, error) {
	details, err := s.registrations.ListDetailsByEvent(ctx, eventID)
	if err != nil {
		return nil, WrapInternal("failed to list event attendees", err)
	}
	return details, nil
}
