package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/services"
	"go.uber.org/zap"
)

const eventBody = `{"title":"GopherCon","description":"Talks","eventDate":"2025-06-01","venueId":4}`

func expectedEventInput() services.EventInput {
	venueID := 4
	return services.EventInput{
		Title:       "GopherCon",
		Description: "Talks",
		EventDate:   models.NewDate(2025, time.June, 1),
		VenueID:     &venueID,
	}
}

func TestEventHandler_HandleListEvents(t *testing.T) {
	t.Run("lists events", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("List", mock.Anything).Return([]*models.Event{
			{ID: 2, Title: "GopherCon", EventDate: models.NewDate(2025, time.June, 1)},
		}, nil)

		w := serve(http.MethodGet, "/api/events", h.HandleListEvents, newRequest(http.MethodGet, "/api/events", ""), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var events []map[string]interface{}
		decodeBody(t, w, &events)
		require.Len(t, events, 1)
		assert.Equal(t, "2025-06-01", events[0]["eventDate"])
	})

	t.Run("empty list is an array", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("List", mock.Anything).Return([]*models.Event{}, nil)

		w := serve(http.MethodGet, "/api/events", h.HandleListEvents, newRequest(http.MethodGet, "/api/events", ""), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("service failure", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("List", mock.Anything).Return(nil, services.WrapInternal("failed", errors.New("db")))

		w := serve(http.MethodGet, "/api/events", h.HandleListEvents, newRequest(http.MethodGet, "/api/events", ""), nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEventHandler_HandleGetEvent(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setup          func(svc *MockEventService)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/api/events/3",
			setup: func(svc *MockEventService) {
				svc.On("Get", mock.Anything, 3).Return(&models.Event{ID: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing",
			path: "/api/events/3",
			setup: func(svc *MockEventService) {
				svc.On("Get", mock.Anything, 3).Return(nil, services.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad id",
			path:           "/api/events/three",
			setup:          func(svc *MockEventService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEventService)
			tt.setup(svc)
			h := NewEventHandler(svc, zap.NewNop())

			w := serve(http.MethodGet, "/api/events/{id}", h.HandleGetEvent, newRequest(http.MethodGet, tt.path, ""), nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestEventHandler_HandleCreateEvent(t *testing.T) {
	t.Run("created for caller", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("Create", mock.Anything, organizer.SubjectID, expectedEventInput()).
			Return(&models.Event{ID: 21, Title: "GopherCon", CreatedBy: organizer.SubjectID}, nil)

		w := serve(http.MethodPost, "/api/events", h.HandleCreateEvent,
			newRequest(http.MethodPost, "/api/events", eventBody), &organizer)

		assert.Equal(t, http.StatusCreated, w.Code)
		var body map[string]interface{}
		decodeBody(t, w, &body)
		assert.Equal(t, float64(21), body["eventId"])
		assert.Equal(t, float64(organizer.SubjectID), body["createdBy"])
		svc.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		w := serve(http.MethodPost, "/api/events", h.HandleCreateEvent,
			newRequest(http.MethodPost, "/api/events", `{"eventDate":"2025-06-01"}`), &organizer)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		w := serve(http.MethodPost, "/api/events", h.HandleCreateEvent,
			newRequest(http.MethodPost, "/api/events", `{"title":"x","eventDate":"01/06/2025"}`), &organizer)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		w := serve(http.MethodPost, "/api/events", h.HandleCreateEvent,
			newRequest(http.MethodPost, "/api/events", eventBody), nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestEventHandler_HandleUpdateEvent(t *testing.T) {
	t.Run("owner updates", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("IsEventOwner", mock.Anything, organizer.SubjectID, 3).Return(true, nil)
		svc.On("Update", mock.Anything, 3, expectedEventInput()).Return(&models.Event{ID: 3, Title: "GopherCon"}, nil)

		w := serve(http.MethodPut, "/api/events/{id}", h.HandleUpdateEvent,
			newRequest(http.MethodPut, "/api/events/3", eventBody), &organizer)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("other organizer is forbidden", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("IsEventOwner", mock.Anything, organizer.SubjectID, 3).Return(false, nil)

		w := serve(http.MethodPut, "/api/events/{id}", h.HandleUpdateEvent,
			newRequest(http.MethodPut, "/api/events/3", eventBody), &organizer)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Forbidden: You do not own this event.", errorMessage(t, w))
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("Update", mock.Anything, 3, expectedEventInput()).Return(&models.Event{ID: 3}, nil)

		w := serve(http.MethodPut, "/api/events/{id}", h.HandleUpdateEvent,
			newRequest(http.MethodPut, "/api/events/3", eventBody), &admin)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertNotCalled(t, "IsEventOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("title only", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("Update", mock.Anything, 3, services.EventInput{Title: "Renamed"}).
			Return(&models.Event{ID: 3, Title: "Renamed"}, nil)

		w := serve(http.MethodPut, "/api/events/{id}", h.HandleUpdateEvent,
			newRequest(http.MethodPut, "/api/events/3", `{"title":"Renamed"}`), &admin)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing event", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("IsEventOwner", mock.Anything, organizer.SubjectID, 9).Return(false, services.ErrEventNotFound)

		w := serve(http.MethodPut, "/api/events/{id}", h.HandleUpdateEvent,
			newRequest(http.MethodPut, "/api/events/9", eventBody), &organizer)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		w := serve(http.MethodPut, "/api/events/{id}", h.HandleUpdateEvent,
			newRequest(http.MethodPut, "/api/events/-1", eventBody), &organizer)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid event ID", errorMessage(t, w))
	})
}

func TestEventHandler_HandleDeleteEvent(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("IsEventOwner", mock.Anything, organizer.SubjectID, 3).Return(true, nil)
		svc.On("Delete", mock.Anything, 3).Return(nil)

		w := serve(http.MethodDelete, "/api/events/{id}", h.HandleDeleteEvent,
			newRequest(http.MethodDelete, "/api/events/3", ""), &organizer)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Event deleted successfully", errorMessage(t, w))
	})

	t.Run("non owner", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("IsEventOwner", mock.Anything, organizer.SubjectID, 3).Return(false, nil)

		w := serve(http.MethodDelete, "/api/events/{id}", h.HandleDeleteEvent,
			newRequest(http.MethodDelete, "/api/events/3", ""), &organizer)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin deletes", func(t *testing.T) {
		svc := new(MockEventService)
		h := NewEventHandler(svc, zap.NewNop())

		svc.On("Delete", mock.Anything, 3).Return(nil)

		w := serve(http.MethodDelete, "/api/events/{id}", h.HandleDeleteEvent,
			newRequest(http.MethodDelete, "/api/events/3", ""), &admin)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
