package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/eventflow/auth"
	"github.com/upb/eventflow/middleware"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/services"
	"github.com/upb/eventflow/utils"
	"go.uber.org/zap"
)

// AuthService is the account behaviour the auth handler depends on
type AuthService interface {
	Register(ctx context.Context, input services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// UserService is the user lookup the user handler depends on
type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// EventService is the event behaviour the event and organizer handlers depend on
type EventService interface {
	List(ctx context.Context) ([]*models.Event, error)
	Get(ctx context.Context, id int) (*models.Event, error)
	Create(ctx context.Context, createdBy int, input services.EventInput) (*models.Event, error)
	Update(ctx context.Context, id int, input services.EventInput) (*models.Event, error)
	Delete(ctx context.Context, id int) error
	ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error)
	IsEventOwner(ctx context.Context, userID, eventID int) (bool, error)
}

// VenueService is the venue behaviour the venue handler depends on
type VenueService interface {
	Create(ctx context.Context, createdBy int, input services.VenueInput) (*models.Venue, error)
	ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Venue, error)
}

// RegistrationService is the registration behaviour the registration and organizer handlers depend on
type RegistrationService interface {
	Register(ctx context.Context, callerID, eventID int, requestedUserID *int) (*models.Registration, error)
	ListDetailsByUser(ctx context.Context, userID int) ([]*models.RegistrationDetails, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error)
	ListDetailsByEvent(ctx context.Context, eventID int) ([]*models.RegistrationDetails, error)
}

// MessageResponse is the body of responses that only carry a message
type MessageResponse struct {
	Message string `json:"message"`
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation.
// It writes the 400 response itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	if err := utils.DecodeJSON(w, r, dst); err != nil {
		writeDecodeError(w, err, logger)
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		HandleValidationError(w, err, logger)
		return false
	}
	return true
}

// pathID parses the named chi URL parameter as a positive id.
// On failure it writes a 400 with message and returns false.
func pathID(w http.ResponseWriter, r *http.Request, param, message string, logger *zap.Logger) (int, bool) {
	id, err := utils.ParseID(chi.URLParam(r, param), param)
	if err != nil {
		if werr := utils.WriteBadRequest(w, message, nil); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}
		return 0, false
	}
	return id, true
}

// callerIdentity returns the identity the auth gate attached to the request.
// Handlers behind protected routes always have one; a missing identity
// means the route table and the gate disagree, so it is treated as 401.
func callerIdentity(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		logger.Warn("protected handler reached without identity",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path))
		if err := utils.WriteUnauthorized(w, ""); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}
		return auth.Identity{}, false
	}
	return identity, true
}

func writeOK(w http.ResponseWriter, data interface{}, logger *zap.Logger) {
	if err := utils.WriteOK(w, data); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

func writeCreated(w http.ResponseWriter, data interface{}, logger *zap.Logger) {
	if err := utils.WriteCreated(w, data); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}

// writeDecodeError writes 413 for oversized bodies and 400 otherwise
func writeDecodeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	status := http.StatusBadRequest
	if errors.Is(err, utils.ErrBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if werr := utils.WriteError(w, status, err.Error(), nil); werr != nil {
		logger.Error("failed to write decode error response", zap.Error(werr))
	}
}

// isEmptyBody reports whether err came from decoding an empty body
func isEmptyBody(err error) bool {
	return errors.Is(err, utils.ErrEmptyBody)
}
