package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/eventflow/models"
	"github.com/upb/eventflow/repositories"
	"go.uber.org/zap"
)

var eventRowColumns = []string{
	"event_id", "title", "description", "event_date", "venue_id",
	"created_by", "created_at", "name", "location", "capacity",
}

func TestEventRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db, zap.NewNop())
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM events e LEFT JOIN venues v (.+) ORDER BY e.event_date DESC").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow(2, "GopherCon", "Talks", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 5, 7, createdAt, "Main Hall", "Bogota", 300).
			AddRow(1, "Meetup", nil, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), nil, 7, createdAt, nil, nil, nil))

	events, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "GopherCon", events[0].Title)
	assert.Equal(t, "2025-06-01", events[0].EventDate.String())
	require.NotNil(t, events[0].VenueID)
	assert.Equal(t, 5, *events[0].VenueID)
	require.NotNil(t, events[0].Venue)
	assert.Equal(t, "Main Hall", events[0].Venue.Name)
	assert.Equal(t, 300, events[0].Venue.Capacity)
	assert.Nil(t, events[0].RegistrationCount)

	assert.Empty(t, events[1].Description)
	assert.Nil(t, events[1].VenueID)
	assert.Nil(t, events[1].Venue)
}

func TestEventRepository_ListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db, zap.NewNop())

	mock.ExpectQuery("SELECT (.+) FROM events").WillReturnRows(sqlmock.NewRows(eventRowColumns))

	events, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventRepository_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectQuery("WHERE e.event_id = \\$1").
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(eventRowColumns))

		event, err := repo.GetByID(context.Background(), 42)

		assert.Nil(t, event)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectQuery("WHERE e.event_id = \\$1").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow(3, "Workshop", "Hands-on", "2025-04-10", nil, 9, time.Now(), nil, nil, nil))

		event, err := repo.GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, 3, event.ID)
		assert.True(t, event.IsOwnedBy(9))
		assert.Equal(t, "2025-04-10", event.EventDate.String())
	})
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	venueID := 5

	t.Run("returns generated id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())
		createdAt := time.Now().UTC()

		mock.ExpectQuery("INSERT INTO events").
			WithArgs("GopherCon", "Talks", sqlmock.AnyArg(), int64(5), 7).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "created_at"}).AddRow(11, createdAt))

		event := &models.Event{
			Title:       "GopherCon",
			Description: "Talks",
			EventDate:   models.NewDate(2025, time.June, 1),
			VenueID:     &venueID,
			CreatedBy:   7,
		}
		err := repo.Create(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, 11, event.ID)
		assert.Equal(t, createdAt, event.CreatedAt)
	})

	t.Run("without venue", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectQuery("INSERT INTO events").
			WithArgs("Meetup", "", sqlmock.AnyArg(), nil, 7).
			WillReturnRows(sqlmock.NewRows([]string{"event_id", "created_at"}).AddRow(12, time.Now()))

		event := &models.Event{Title: "Meetup", EventDate: models.NewDate(2025, time.May, 3), CreatedBy: 7}

		require.NoError(t, repo.Create(ctx, event))
		assert.Equal(t, 12, event.ID)
	})

	t.Run("unknown venue", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectQuery("INSERT INTO events").
			WillReturnError(&pq.Error{Code: "23503", Constraint: "events_venue_id_fkey"})

		event := &models.Event{Title: "Meetup", EventDate: models.NewDate(2025, time.May, 3), VenueID: &venueID, CreatedBy: 7}

		assert.ErrorIs(t, repo.Create(ctx, event), repositories.ErrReferenceNotFound)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	event := &models.Event{ID: 3, Title: "Renamed", EventDate: models.NewDate(2025, time.July, 1)}

	t.Run("updates row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE events").
			WithArgs(3, "Renamed", "", sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, event))
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE events").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, event), repositories.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectExec("DELETE FROM events WHERE event_id = \\$1").
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 3))
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEventRepository(db, zap.NewNop())

		mock.ExpectExec("DELETE FROM events").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 3), repositories.ErrNotFound)
	})
}

func TestEventRepository_ListByOrganizer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db, zap.NewNop())

	columns := append(append([]string{}, eventRowColumns...), "registration_count")
	mock.ExpectQuery("registration_count (.+) WHERE e.created_by = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "GopherCon", "Talks", "2025-06-01", 5, 7, time.Now(), "Main Hall", "Bogota", 300, 14).
			AddRow(1, "Meetup", "", "2025-02-01", nil, 7, time.Now(), nil, nil, nil, 0))

	events, err := repo.ListByOrganizer(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, events, 2)
	require.NotNil(t, events[0].RegistrationCount)
	assert.Equal(t, 14, *events[0].RegistrationCount)
	require.NotNil(t, events[1].RegistrationCount)
	assert.Equal(t, 0, *events[1].RegistrationCount)
}
