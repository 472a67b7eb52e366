package allocate_room

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
)

type fakeFinder struct {
	results []domain.AllocationResult
	err     error
	calls   int
	reqs    []domain.BookingRequest
}

func (f *fakeFinder) Find(_ context.Context, req *domain.BookingRequest) (domain.AllocationResult, error) {
	f.reqs = append(f.reqs, *req)
	f.calls++
	if f.err != nil {
		return domain.AllocationResult{}, f.err
	}
	i := f.calls - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i], nil
}

type fakeCommitter struct {
	errs  []error
	calls []create_booking.Request
}

func (f *fakeCommitter) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.calls = append(f.calls, *req)
	i := len(f.calls) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return &create_booking.Response{
		ID:         int64(100 + i),
		RoomID:     req.RoomID,
		Day:        req.Day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Requester:  req.Requester,
		Department: req.Department,
		Status:     string(domain.StatusConfirmed),
	}, nil
}

type fakeProfiles struct {
	profile *profileservice.Profile
	err     error
	calls   int
}

func (f *fakeProfiles) GetProfileWithGracefulDegradation(_ context.Context, _ string) (*profileservice.Profile, error) {
	f.calls++
	return f.profile, f.err
}

type recordedAttempt struct {
	outcome  string
	attempts int
}

type fakeMetrics struct {
	observed []recordedAttempt
}

func (m *fakeMetrics) ObserveAttempts(outcome string, attempts int) {
	m.observed = append(m.observed, recordedAttempt{outcome, attempts})
}

func found(roomID string) domain.AllocationResult {
	return domain.AllocationResult{
		Success:        true,
		BestMatch:      &domain.Candidate{Room: domain.Room{ID: roomID, Capacity: 30}},
		TotalAvailable: 1,
	}
}

func validRequest() *Request {
	return &Request{
		Search: find_room.Request{
			Day:              "Monday",
			StartTime:        "09:00",
			DurationHours:    2,
			RequiredCapacity: 25,
		},
		Purpose:   "Seminar",
		Requester: domain.Requester{UID: "u-1", Name: "Dr. Smith"},
	}
}

func newUseCase(finder Finder, committer Committer, profiles ProfileClient, m *fakeMetrics) *UseCase {
	return NewUseCase(finder, committer, profiles, m, Options{MaxAttempts: 3}, logger.NewNop())
}

func TestUseCase_Execute_AllocatesBestMatch(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{}
	m := &fakeMetrics{}

	resp, err := newUseCase(finder, committer, nil, m).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(100), resp.BookingID())
	assert.Equal(t, 1, resp.Attempts)
	require.Len(t, committer.calls, 1)

	call := committer.calls[0]
	assert.Equal(t, "a-101", call.RoomID)
	assert.Equal(t, domain.Monday, call.Day)
	assert.Equal(t, "11:00", call.EndTime.String())
	assert.Equal(t, "Seminar", call.Purpose)
	assert.Equal(t, []recordedAttempt{{outcomeAllocated, 1}}, m.observed)
}

func TestUseCase_Execute_NoCandidate(t *testing.T) {
	noRoom := domain.AllocationResult{
		Success: false,
		RejectedRooms: domain.RejectedRooms{
			TooSmall: []domain.RejectedRoom{{Room: domain.Room{ID: "tiny"}, Reason: domain.RejectionTooSmall}},
		},
		Message: "no room",
	}
	finder := &fakeFinder{results: []domain.AllocationResult{noRoom}}
	committer := &fakeCommitter{}
	m := &fakeMetrics{}

	resp, err := newUseCase(finder, committer, nil, m).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Booking)
	assert.Zero(t, resp.BookingID())
	assert.Len(t, resp.Result.RejectedRooms.TooSmall, 1)
	assert.Empty(t, committer.calls)
	assert.Equal(t, []recordedAttempt{{outcomeNoCandidate, 1}}, m.observed)
}

func TestUseCase_Execute_ResearchesAfterLostRace(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101"), found("b-202")}}
	committer := &fakeCommitter{errs: []error{
		fmt.Errorf("%w: room a-101 already booked", create_booking.ErrConflictOnCommit),
	}}
	m := &fakeMetrics{}

	resp, err := newUseCase(finder, committer, nil, m).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Attempts)
	assert.Equal(t, 2, finder.calls)
	require.Len(t, committer.calls, 2)
	assert.Equal(t, "b-202", committer.calls[1].RoomID)
	assert.Equal(t, "b-202", resp.Booking.RoomID)
}

func TestUseCase_Execute_RoomBusyIsRetried(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{errs: []error{
		fmt.Errorf("%w: room:a-101:Monday", create_booking.ErrRoomBusy),
	}}

	resp, err := newUseCase(finder, committer, nil, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Attempts)
}

func TestUseCase_Execute_AttemptsExhausted(t *testing.T) {
	conflict := fmt.Errorf("%w: taken", create_booking.ErrConflictOnCommit)
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{errs: []error{conflict, conflict, conflict}}
	m := &fakeMetrics{}

	_, err := newUseCase(finder, committer, nil, m).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrAttemptsExhausted)
	require.ErrorIs(t, err, create_booking.ErrConflictOnCommit)
	assert.Len(t, committer.calls, 3)
	assert.Equal(t, []recordedAttempt{{outcomeExhausted, 3}}, m.observed)
}

func TestUseCase_Execute_NonRetryableCommitError(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{errs: []error{
		fmt.Errorf("%w: connection reset", create_booking.ErrPersistence),
	}}

	_, err := newUseCase(finder, committer, nil, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, create_booking.ErrPersistence)
	assert.Len(t, committer.calls, 1)
}

func TestUseCase_Execute_CatalogError(t *testing.T) {
	finder := &fakeFinder{err: assert.AnError}

	_, err := newUseCase(finder, &fakeCommitter{}, nil, &fakeMetrics{}).Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, err, assert.AnError)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "missing uid", mutate: func(r *Request) { r.Requester.UID = " " }},
		{name: "bad day", mutate: func(r *Request) { r.Search.Day = "Mo" }},
		{name: "bad start", mutate: func(r *Request) { r.Search.StartTime = "25:00" }},
		{name: "zero duration", mutate: func(r *Request) { r.Search.DurationHours = 0 }},
		{name: "zero capacity", mutate: func(r *Request) { r.Search.RequiredCapacity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
			req := validRequest()
			tt.mutate(req)

			_, err := newUseCase(finder, &fakeCommitter{}, nil, &fakeMetrics{}).Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, finder.calls)
		})
	}

	t.Run("nil request", func(t *testing.T) {
		_, err := newUseCase(&fakeFinder{}, &fakeCommitter{}, nil, &fakeMetrics{}).Execute(context.Background(), nil)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_Execute_FillsRequesterFromProfile(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{}
	profiles := &fakeProfiles{profile: &profileservice.Profile{UID: "u-1", Name: "Dr. Jones", Department: "MATH"}}

	req := validRequest()
	req.Requester.Name = ""

	_, err := newUseCase(finder, committer, profiles, &fakeMetrics{}).Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, profiles.calls)
	assert.Equal(t, "MATH", finder.reqs[0].Department)
	assert.Equal(t, "Dr. Jones", committer.calls[0].Requester.Name)
	assert.Equal(t, "MATH", committer.calls[0].Department)
}

func TestUseCase_Execute_KeepsProvidedRequesterData(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{}
	profiles := &fakeProfiles{profile: &profileservice.Profile{Name: "Other", Department: "PHYS"}}

	req := validRequest()
	req.Search.Department = "CS"

	_, err := newUseCase(finder, committer, profiles, &fakeMetrics{}).Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, profiles.calls)
	assert.Equal(t, "Dr. Smith", committer.calls[0].Requester.Name)
	assert.Equal(t, "CS", committer.calls[0].Department)
}

func TestUseCase_Execute_ProfileFailureDoesNotFail(t *testing.T) {
	finder := &fakeFinder{results: []domain.AllocationResult{found("a-101")}}
	committer := &fakeCommitter{}
	profiles := &fakeProfiles{err: profileservice.ErrServiceDegraded}

	req := validRequest()
	req.Requester.Name = ""

	resp, err := newUseCase(finder, committer, profiles, &fakeMetrics{}).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, committer.calls[0].Requester.Name)
}
