package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func bookingRow(rows *sqlmock.Rows, id int64, day, start, end string, createdAt time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "a-101", day, start, end, 25, "Seminar", "u-1", "Dr. Smith", "CS", "CONFIRMED", 30, "LECTURE", "A", createdAt)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	createdAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs("a-101", "Monday", "09:00", "11:00", 25, "Seminar", "u-1", "Dr. Smith", "CS", "CONFIRMED", 30, "LECTURE", "A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(17), createdAt))

	b, err := repo.Create(context.Background(), &domain.Booking{
		RoomID:           "a-101",
		Day:              domain.Monday,
		StartTime:        types.MustTimeString("09:00"),
		EndTime:          types.MustTimeString("11:00"),
		RequiredCapacity: 25,
		Purpose:          "Seminar",
		Requester:        domain.Requester{UID: "u-1", Name: "Dr. Smith"},
		Department:       "CS",
		Status:           domain.StatusConfirmed,
		RoomCapacity:     30,
		RoomType:         domain.RoomTypeLecture,
		RoomBuilding:     "A",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(17), b.ID)
	assert.Equal(t, createdAt, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Error(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(&pq.Error{Code: "40P01"})

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.StatusConfirmed})
	require.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40P01"), pqErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		createdAt := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
			WithArgs(int64(17)).
			WillReturnRows(bookingRow(sqlmock.NewRows(bookingColumns), 17, "Monday", "09:00", "11:00", createdAt))

		b, err := repo.GetByID(context.Background(), 17)
		require.NoError(t, err)
		assert.Equal(t, "a-101", b.RoomID)
		assert.Equal(t, domain.Monday, b.Day)
		assert.Equal(t, "11:00", b.EndTime.String())
		assert.Equal(t, "Dr. Smith", b.Requester.Name)
		assert.True(t, b.IsConfirmed())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.GetByID(context.Background(), 99)
		require.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByRequester(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(bookingColumns)
	bookingRow(rows, 1, "Monday", "09:00", "10:00", now)
	bookingRow(rows, 2, "Wednesday", "13:00", "14:00", now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE requester_uid = $1 ORDER BY array_position(")).
		WithArgs("u-1").
		WillReturnRows(rows)

	bookings, err := repo.GetByRequester(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.Wednesday, bookings[1].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}
