package find_room

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/internal/allocation"
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/metrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

type fakeCatalog struct {
	rooms []domain.Room
	err   error
	calls int
}

func (f *fakeCatalog) Snapshot(_ context.Context) ([]domain.Room, error) {
	f.calls++
	return f.rooms, f.err
}

func rooms() []domain.Room {
	return []domain.Room{
		{ID: "big", Name: "Big", Capacity: 100, Type: domain.RoomTypeLecture},
		{ID: "mid", Name: "Mid", Capacity: 30, Type: domain.RoomTypeLecture},
		{ID: "lab", Name: "Lab", Capacity: 30, Type: domain.RoomTypeLaboratory},
		{ID: "busy", Name: "Busy", Capacity: 28, Type: domain.RoomTypeLecture, Occupancy: []domain.OccupancyPeriod{{
			Day:       domain.Monday,
			StartTime: types.MustTimeString("08:00"),
			EndTime:   types.MustTimeString("10:00"),
		}}},
	}
}

func newUseCase(catalog Catalog) (*UseCase, *metrics.Metrics) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	return NewUseCase(catalog, m, allocation.DefaultOptions(), logger.NewNop()), m
}

func TestExecute_FindsSmallestFreeRoom(t *testing.T) {
	uc, m := newUseCase(&fakeCatalog{rooms: rooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		Day:              "mon",
		StartTime:        "9",
		DurationHours:    1.5,
		RequiredCapacity: 25,
		RoomType:         "LECTURE",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Monday, resp.Request.Day)
	assert.Equal(t, "10:30", resp.Request.EndTime.String())

	require.True(t, resp.Result.Success)
	assert.Equal(t, "mid", resp.Result.BestMatch.Room.ID)
	require.Len(t, resp.Result.Alternatives, 1)
	assert.Equal(t, "big", resp.Result.Alternatives[0].Room.ID)
	assert.Len(t, resp.Result.RejectedRooms.TimeConflict, 1)
	assert.Len(t, resp.Result.RejectedRooms.WrongType, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AllocationResults.WithLabelValues(outcomeFound)))
}

func TestExecute_NoCandidateIsNotAnError(t *testing.T) {
	uc, m := newUseCase(&fakeCatalog{rooms: rooms()})

	resp, err := uc.Execute(context.Background(), &Request{
		Day:              "Monday",
		StartTime:        "09:00",
		EndTime:          "10:00",
		RequiredCapacity: 500,
	})
	require.NoError(t, err)
	assert.False(t, resp.Result.Success)
	assert.Nil(t, resp.Result.BestMatch)
	assert.Contains(t, resp.Result.Message, "too small")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AllocationResults.WithLabelValues(outcomeNoCandidate)))
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"nil", nil},
		{"bad time", &Request{Day: "Monday", StartTime: "25:00", DurationHours: 1, RequiredCapacity: 1}},
		{"bad day", &Request{Day: "Mo", StartTime: "09:00", DurationHours: 1, RequiredCapacity: 1}},
		{"zero duration", &Request{Day: "Monday", StartTime: "09:00", RequiredCapacity: 1}},
		{"zero capacity", &Request{Day: "Monday", StartTime: "09:00", DurationHours: 1}},
		{"unknown type", &Request{Day: "Monday", StartTime: "09:00", DurationHours: 1, RequiredCapacity: 1, RoomType: "GYM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{rooms: rooms()}
			uc, _ := newUseCase(catalog)

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, catalog.calls, "catalog must not be read for invalid input")
		})
	}
}

func TestExecute_CatalogError(t *testing.T) {
	uc, _ := newUseCase(&fakeCatalog{err: assert.AnError})

	_, err := uc.Execute(context.Background(), &Request{
		Day: "Monday", StartTime: "09:00", DurationHours: 1, RequiredCapacity: 1,
	})
	require.ErrorIs(t, err, ErrInternal)
}
