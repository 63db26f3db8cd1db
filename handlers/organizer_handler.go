package handlers

import (
	"net/http"

	"github.com/upb/eventflow/services"
	"go.uber.org/zap"
)

// OrganizerHandler serves the organizer dashboard
type OrganizerHandler struct {
	events        EventService
	registrations RegistrationService
	logger        *zap.Logger
}

// NewOrganizerHandler creates a new OrganizerHandler
func NewOrganizerHandler(events EventService, registrations RegistrationService, logger *zap.Logger) *OrganizerHandler {
	return &OrganizerHandler{
		events:        events,
		registrations: registrations,
		logger:        logger,
	}
}

// HandleListEvents handles GET /api/organizer/events
func (h *OrganizerHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	events, err := h.events.ListByOrganizer(r.Context(), identity.SubjectID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, events, h.logger)
}

// HandleListEventRegistrations handles GET /api/organizer/events/{id}/registrations.
// Only the organizer who created the event may see its attendees.
func (h *OrganizerHandler) HandleListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "id", "Invalid event ID", h.logger)
	if !ok {
		return
	}

	owner, err := h.events.IsEventOwner(r.Context(), identity.SubjectID, eventID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if !owner {
		HandleServiceError(w, services.ErrNotEventOwner, h.logger)
		return
	}

	details, err := h.registrations.ListDetailsByEvent(r.Context(), eventID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, details, h.logger)
}
