package handlers

import (
	"net/http"

	"github.com/upb/eventflow/services"
	"go.uber.org/zap"
)

// VenueRequest is the body of POST /api/venues
type VenueRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location" validate:"max=255"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// VenueHandler serves the caller's venues
type VenueHandler struct {
	venues VenueService
	logger *zap.Logger
}

// NewVenueHandler creates a new VenueHandler
func NewVenueHandler(venues VenueService, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{venues: venues, logger: logger}
}

// HandleListVenues handles GET /api/venues
func (h *VenueHandler) HandleListVenues(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	venues, err := h.venues.ListByOrganizer(r.Context(), identity.SubjectID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeOK(w, venues, h.logger)
}

// HandleCreateVenue handles POST /api/venues
func (h *VenueHandler) HandleCreateVenue(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req VenueRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	venue, err := h.venues.Create(r.Context(), identity.SubjectID, services.VenueInput{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	writeCreated(w, venue, h.logger)
}
