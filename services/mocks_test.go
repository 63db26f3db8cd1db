package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/eventflow/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) List(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	args := m.Called(ctx, id)
	if event := args.Get(0); event != nil {
		return event.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Event, error) {
	args := m.Called(ctx, organizerID)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockVenueRepository is a mock implementation of VenueRepository
type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if venue := args.Get(0); venue != nil {
		return venue.(*models.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVenueRepository) ListByOrganizer(ctx context.Context, organizerID int) ([]*models.Venue, error) {
	args := m.Called(ctx, organizerID)
	if venues := args.Get(0); venues != nil {
		return venues.([]*models.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRegistrationRepository is a mock implementation of RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) ListByUser(ctx context.Context, userID int) ([]*models.Registration, error) {
	args := m.Called(ctx, userID)
	if regs := args.Get(0); regs != nil {
		return regs.([]*models.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepository) ListDetailsByUser(ctx context.Context, userID int) ([]*models.RegistrationDetails, error) {
	args := m.Called(ctx, userID)
	if details := args.Get(0); details != nil {
		return details.([]*models.RegistrationDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Registration, error) {
	args := m.Called(ctx, eventID)
	if regs := args.Get(0); regs != nil {
		return regs.([]*models.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepository) ListDetailsByEvent(ctx context.Context, eventID int) ([]*models.RegistrationDetails, error) {
	args := m.Called(ctx, eventID)
	if details := args.Get(0); details != nil {
		return details.([]*models.RegistrationDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(subjectID int, role models.UserRole) (string, error) {
	args := m.Called(subjectID, role)
	return args.String(0), args.Error(1)
}

// expectTransaction sets up a transaction manager whose transaction
// commits when commit is true and rolls back otherwise.
func expectTransaction(ctx context.Context, commit bool) (*MockTransactionManager, *MockTransaction) {
	txMgr := new(MockTransactionManager)
	tx := new(MockTransaction)

	txMgr.On("Begin", mock.Anything).Return(tx, nil)
	tx.On("Context").Return(ctx)
	if commit {
		tx.On("Commit").Return(nil)
	} else {
		tx.On("Rollback").Return(nil)
	}
	return txMgr, tx
}
