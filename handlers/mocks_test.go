package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/eventflow/auth"
	"github.com/upb/eventflow/middleware"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/services"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventService is a mock implementation of EventService
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) List(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, id int) (*models.Event, error) {
	args := m.Called(ctx, id)
	if event := args.Get(0); event != nil {
		return event.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, createdBy int, input services.EventInput) (*models.Event, error) {
	args := m.Called(ctx, createdBy, input)
	if event := args.Get(0); event != nil {
		return event.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id int, input services.EventInput) (*models.Event, error) {
	args := m.Called(ctx, id, input)
	if event := args.Get(0); event != nil {
		return event.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventService) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error) {
	args := m.Called(ctx, organizerID)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventService) IsEventOwner(ctx context.Context, userID, eventID int) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

// MockVenueService is a mock implementation of VenueService
type MockVenueService struct {
	mock.Mock
}

func (m *MockVenueService) Create(ctx context.Context, createdBy int, input services.VenueInput) (*models.Venue, error) {
	args := m.Called(ctx, createdBy, input)
	if venue := args.Get(0); venue != nil {
		return venue.(*models.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVenueService) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Venue, error) {
	args := m.Called(ctx, organizerID)
	if venues := args.Get(0); venues != nil {
		return venues.([]*models.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRegistrationService is a mock implementation of RegistrationService
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(ctx context.Context, callerID, eventID int, requestedUserID *int) (*models.Registration, error) {
	args := m.Called(ctx, callerID, eventID, requestedUserID)
	if reg := args.Get(0); reg != nil {
		return reg.(*models.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationService) ListDetailsByUser(ctx context.Context, userID int) ([]*models.RegistrationDetails, error) {
	args := m.Called(ctx, userID)
	if details := args.Get(0); details != nil {
		return details.([]*models.RegistrationDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationService) ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error) {
	args := m.Called(ctx, eventID)
	if regs := args.Get(0); regs != nil {
		return regs.([]*models.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationService) ListDetailsByEvent(ctx context.Context, eventID int) ([]*models.RegistrationDetails, error) {
	args := m.Called(ctx, eventID)
	if details := args.Get(0); details != nil {
		return details.([]*models.RegistrationDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	attendee  = auth.Identity{SubjectID: 42, Role: models.RoleAttendee}
	organizer = auth.Identity{SubjectID: 7, Role: models.RoleOrganizer}
	admin     = auth.Identity{SubjectID: 1, Role: models.RoleAdmin}
)

// serve routes a request via a chi router so URL params resolve, with
// identity attached the way the auth gate would.
func serve(method, pattern string, handler http.HandlerFunc, req *http.Request, identity *auth.Identity) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(dst))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, w, &body)
	msg, _ := body["message"].(string)
	return msg
}
