package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

type fakeRepo struct {
	byID  map[int64]*domain.Booking
	err   error
	calls int
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByRequester(_ context.Context, uid string) ([]*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.Requester.UID == uid {
			out = append(out, b)
		}
	}
	return out, nil
}

func newBooking(id int64, uid string) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		RoomID:           "a-101",
		Day:              domain.Monday,
		StartTime:        types.MustTimeString("09:00"),
		EndTime:          types.MustTimeString("11:00"),
		RequiredCapacity: 25,
		Requester:        domain.Requester{UID: uid, Name: "Dr. Smith"},
		Status:           domain.StatusConfirmed,
		RoomCapacity:     30,
		RoomType:         domain.RoomTypeLecture,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: newBooking(1, "u-1")}}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "Dr. Smith", resp.Requester.Name)

	_, err = svc.GetByID(ctx, 1, "u-2")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 2, "u-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(ctx, 0, "u-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: bookingRepo.ErrExecQuery}, logger.NewNop())

	_, err := svc.GetByID(context.Background(), 1, "u-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetRequesterBookings(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{
		1: newBooking(1, "u-1"),
		2: newBooking(2, "u-2"),
	}}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	resp, err := svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{CallerUID: "u-1", RequesterUID: "u-1"})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	calls := repo.calls
	_, err = svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{CallerUID: "u-1", RequesterUID: "u-2"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, calls, repo.calls, "repository must not be hit for foreign requester")

	_, err = svc.GetRequesterBookings(ctx, &models.GetRequesterBookingsRequest{CallerUID: "", RequesterUID: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromDomainBookingList_Empty(t *testing.T) {
	resp := models.FromDomainBookingList(nil)
	require.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}
