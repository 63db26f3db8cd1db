package handlers

import (
	"net/http"

	"github.com/upb/eventflow/auth"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/services"
	"go.uber.org/zap"
)

// EventRequest is the body of event create and update requests
type EventRequest struct {
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description"`
	EventDate   models.Date `json:"eventDate"`
	VenueID     *int        `json:"venueId" validate:"omitempty,gt=0"`
}

func (req EventRequest) input() services.EventInput {
	return services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		VenueID:     req.VenueID,
	}
}

// EventHandler serves the public event catalogue and event management
type EventHandler struct {
	events EventService
	logger *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

// HandleListEvents handles GET /api/events
func (h *EventHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, events, h.logger)
}

// HandleGetEvent handles GET /api/events/{id}
func (h *EventHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Invalid event ID", h.logger)
	if !ok {
		return
	}

	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, event, h.logger)
}

// HandleCreateEvent handles POST /api/events
func (h *EventHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req EventRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	event, err := h.events.Create(r.Context(), identity.SubjectID, req.input())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeCreated(w, event, h.logger)
}

// HandleUpdateEvent handles PUT /api/events/{id}
func (h *EventHandler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "Invalid event ID", h.logger)
	if !ok {
		return
	}

	var req EventRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	if !h.authorizeOwner(w, r, identity, id) {
		return
	}

	event, err := h.events.Update(r.Context(), id, req.input())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, event, h.logger)
}

// HandleDeleteEvent handles DELETE /api/events/{id}
func (h *EventHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "Invalid event ID", h.logger)
	if !ok {
		return
	}

	if !h.authorizeOwner(w, r, identity, id) {
		return
	}

	if err := h.events.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, MessageResponse{Message: "Event deleted successfully"}, h.logger)
}

// authorizeOwner lets admins through and requires everyone else to own the event
func (h *EventHandler) authorizeOwner(w http.ResponseWriter, r *http.Request, identity auth.Identity, eventID int) bool {
	if identity.IsAdmin() {
		return true
	}

	owner, err := h.events.IsEventOwner(r.Context(), identity.SubjectID, eventID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return false
	}
	if !owner {
		h.logger.Warn("event ownership check failed",
			zap.Int("subject_id", identity.SubjectID),
			zap.Int("event_id", eventID))
		HandleServiceError(w, services.ErrNotEventOwner, h.logger)
		return false
	}
	return true
}
