package handlers

import (
	"net/http"

	"github.com/upb/eventflow/utils"
	"go.uber.org/zap"
)

// RegisterForEventRequest is the optional body of POST /api/events/{id}/register.
// When UserID is present it must name the caller.
type RegisterForEventRequest struct {
	UserID *int `json:"userId" validate:"omitempty,gt=0"`
}

// RegistrationHandler serves event registrations
type RegistrationHandler struct {
	registrations RegistrationService
	logger        *zap.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrations RegistrationService, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, logger: logger}
}

// HandleRegister handles POST /api/events/{id}/register
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "id", "Invalid event ID", h.logger)
	if !ok {
		return
	}

	var req RegisterForEventRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil && !isEmptyBody(err) {
		writeDecodeError(w, err, h.logger)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	reg, err := h.registrations.Register(r.Context(), identity.SubjectID, eventID, req.UserID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeCreated(w, reg, h.logger)
}

// HandleListUserRegistrations handles GET /api/users/{id}/registrations.
// The gate checks the caller is that user or an admin; the check is
// repeated here against the routed id.
func (h *RegistrationHandler) HandleListUserRegistrations(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "id", "Invalid user ID", h.logger)
	if !ok {
		return
	}
	if userID != identity.SubjectID && !identity.IsAdmin() {
		if err := utils.WriteForbidden(w, ""); err != nil {
			h.logger.Error("failed to write forbidden response", zap.Error(err))
		}
		return
	}

	details, err := h.registrations.ListDetailsByUser(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, details, h.logger)
}

// HandleListEventRegistrations handles GET /api/admin/registrations?eventId=
func (h *RegistrationHandler) HandleListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("eventId")
	if raw == "" {
		if err := utils.WriteBadRequest(w, "Event ID parameter is required", nil); err != nil {
			h.logger.Error("failed to write bad request response", zap.Error(err))
		}
		return
	}
	eventID, err := utils.ParseID(raw, "eventId")
	if err != nil {
		if werr := utils.WriteBadRequest(w, "Invalid event ID", nil); werr != nil {
			h.logger.Error("failed to write bad request response", zap.Error(werr))
		}
		return
	}

	regs, err := h.registrations.ListByEvent(r.Context(), eventID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, regs, h.logger)
}
