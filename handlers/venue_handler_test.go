package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/services"
	"go.uber.org/zap"
)

func TestVenueHandler_HandleListVenues(t *testing.T) {
	svc := new(MockVenueService)
	h := NewVenueHandler(svc, zap.NewNop())

	svc.On("ListByOrganizer", mock.Anything, organizer.SubjectID).
		Return([]*models.Venue{{ID: 4, Name: "Main Hall", Capacity: 300}}, nil)

	w := serve(http.MethodGet, "/api/venues", h.HandleListVenues,
		newRequest(http.MethodGet, "/api/venues", ""), &organizer)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"venueId":4,"name":"Main Hall","capacity":300}]`, w.Body.String())
}

func TestVenueHandler_HandleCreateVenue(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockVenueService)
		h := NewVenueHandler(svc, zap.NewNop())

		svc.On("Create", mock.Anything, admin.SubjectID, services.VenueInput{Name: "Main Hall", Location: "Bogota", Capacity: 300}).
			Return(&models.Venue{ID: 4, Name: "Main Hall", Location: "Bogota", Capacity: 300, CreatedBy: admin.SubjectID}, nil)

		w := serve(http.MethodPost, "/api/venues", h.HandleCreateVenue,
			newRequest(http.MethodPost, "/api/venues", `{"name":"Main Hall","location":"Bogota","capacity":300}`), &admin)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("name required", func(t *testing.T) {
		svc := new(MockVenueService)
		h := NewVenueHandler(svc, zap.NewNop())

		w := serve(http.MethodPost, "/api/venues", h.HandleCreateVenue,
			newRequest(http.MethodPost, "/api/venues", `{"capacity":10}`), &organizer)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative capacity", func(t *testing.T) {
		svc := new(MockVenueService)
		h := NewVenueHandler(svc, zap.NewNop())

		w := serve(http.MethodPost, "/api/venues", h.HandleCreateVenue,
			newRequest(http.MethodPost, "/api/venues", `{"name":"Hall","capacity":-5}`), &organizer)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
