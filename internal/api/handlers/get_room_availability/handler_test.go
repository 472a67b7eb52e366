package get_room_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	getRoomAvailability "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

type fakeUseCase struct {
	err error
	got *getRoomAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getRoomAvailability.Request) (*getRoomAvailability.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getRoomAvailability.Response{
		Room: domain.Room{ID: req.RoomID, Capacity: 30, Type: domain.RoomTypeSeminar},
		Day:  domain.Monday,
		Slots: []getRoomAvailability.Slot{
			{StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("09:00"), Free: true},
		},
		FreeWindows: []getRoomAvailability.Window{
			{StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("09:30")},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/rooms/{roomId}/availability", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/rooms/a-101/availability?day=mon&slot=60")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "a-101", uc.got.RoomID)
	assert.Equal(t, 60, uc.got.SlotMinutes)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Monday", resp.Day)
	require.Len(t, resp.FreeWindows, 1)
	assert.Equal(t, 90, resp.FreeWindows[0].DurationMinutes)
}

func TestHandler_DefaultsToToday(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/rooms/a-101/availability")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.DayFromWeekday(time.Now().Weekday()).String(), uc.got.Day)
	assert.Zero(t, uc.got.SlotMinutes)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad slot", target: "/rooms/a/availability?day=mon&slot=x", want: http.StatusBadRequest},
		{name: "invalid", target: "/rooms/a/availability?day=mon", err: getRoomAvailability.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "not found", target: "/rooms/a/availability?day=mon", err: getRoomAvailability.ErrRoomNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/rooms/a/availability?day=mon", err: getRoomAvailability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&fakeUseCase{err: tt.err}, tt.target).Code)
		})
	}
}
