package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/infra/lock"
	roomRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/metrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/ptr"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/txmanager"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// memStore хранилище в памяти, реализующее оба репозитория
type memStore struct {
	mu        sync.Mutex
	rooms     map[string]domain.CatalogEntry
	occupancy map[string][]domain.OccupancyPeriod
	bookings  []*domain.Booking
	nextID    int64

	hideOccupancy bool  // ListOccupancy возвращает пустой список, как при гонке мимо блокировки
	appendErr     error // ошибка AppendOccupancy
}

type memSnapshot struct {
	occupancy map[string][]domain.OccupancyPeriod
	bookings  []*domain.Booking
	nextID    int64
}

func newMemStore(rooms ...domain.CatalogEntry) *memStore {
	s := &memStore{
		rooms:     make(map[string]domain.CatalogEntry),
		occupancy: make(map[string][]domain.OccupancyPeriod),
	}
	for _, r := range rooms {
		s.rooms[r.ID] = r
		for _, p := range r.Occupancy {
			s.occupancy[r.ID] = append(s.occupancy[r.ID], p)
		}
	}
	return s
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	occ := make(map[string][]domain.OccupancyPeriod, len(s.occupancy))
	for k, v := range s.occupancy {
		occ[k] = append([]domain.OccupancyPeriod(nil), v...)
	}
	return memSnapshot{
		occupancy: occ,
		bookings:  append([]*domain.Booking(nil), s.bookings...),
		nextID:    s.nextID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.occupancy = snap.occupancy
	s.bookings = snap.bookings
	s.nextID = snap.nextID
}

func (s *memStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	s.bookings = append(s.bookings, b)
	return b, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*domain.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &entry, nil
}

func (s *memStore) ListOccupancy(_ context.Context, roomID string, day domain.Day) ([]domain.OccupancyPeriod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hideOccupancy {
		return nil, nil
	}
	var out []domain.OccupancyPeriod
	for _, p := range s.occupancy[roomID] {
		if p.Day == day {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) AppendOccupancy(_ context.Context, roomID string, period domain.OccupancyPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	for _, p := range s.occupancy[roomID] {
		if p.Overlaps(period.Day, period.StartTime, period.EndTime) {
			return fmt.Errorf("%w: test", roomRepo.ErrOccupancyConflict)
		}
	}
	s.occupancy[roomID] = append(s.occupancy[roomID], period)
	return nil
}

func (s *memStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *memStore) occupancyOf(roomID string) []domain.OccupancyPeriod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.OccupancyPeriod(nil), s.occupancy[roomID]...)
}

// fakeTx откатывает изменения хранилища при ошибке fn
type fakeTx struct {
	store *memStore
	err   error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	snap := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

func period(day domain.Day, start, end, requester string) domain.OccupancyPeriod {
	return domain.OccupancyPeriod{
		Day:       day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		Requester: requester,
	}
}

func lectureRoom() domain.CatalogEntry {
	return domain.CatalogEntry{
		ID:        "a-101",
		Name:      "A 101",
		Capacity:  ptr.Ptr(30),
		Type:      ptr.Ptr(domain.RoomTypeLecture),
		Building:  "A",
		Occupancy: []domain.OccupancyPeriod{period(domain.Monday, "09:00", "11:00", "Dr. Smith")},
	}
}

func request(start, end string) *Request {
	return &Request{
		RoomID:           "a-101",
		Day:              domain.Monday,
		StartTime:        types.MustTimeString(start),
		EndTime:          types.MustTimeString(end),
		RequiredCapacity: 25,
		Purpose:          "Seminar",
		Requester:        domain.Requester{UID: "u-1", Name: "Prof. Lee"},
		Department:       "CS",
	}
}

type fixture struct {
	store   *memStore
	tx      *fakeTx
	locker  *lock.LocalLocker
	metrics *metrics.Metrics
	uc      *UseCase
}

func newFixture(rooms ...domain.CatalogEntry) *fixture {
	store := newMemStore(rooms...)
	tx := &fakeTx{store: store}
	locker := lock.NewLocalLocker(lock.Options{TTL: time.Minute, RetryCount: 0})
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	uc := NewUseCase(store, store, domain.DefaultRoomDefaults(), locker, tx, m, DefaultOptions(), logger.NewNop())
	return &fixture{store: store, tx: tx, locker: locker, metrics: m, uc: uc}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(lectureRoom())

	resp, err := f.uc.Execute(context.Background(), request("11:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, 30, resp.RoomCapacity)
	assert.Equal(t, domain.RoomTypeLecture, resp.RoomType)
	assert.Equal(t, "A", resp.RoomBuilding)

	occ := f.store.occupancyOf("a-101")
	require.Len(t, occ, 2)
	assert.Equal(t, int64(1), occ[1].BookingID)
	assert.Equal(t, "Prof. Lee", occ[1].Requester)
	assert.Equal(t, "CS", occ[1].Department)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CommitResults.WithLabelValues(outcomeConfirmed)))
}

func TestExecute_EnrichesRoomFromDefaults(t *testing.T) {
	f := newFixture(domain.CatalogEntry{ID: "a-101", Name: "Hall"})

	resp, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRoomCapacity, resp.RoomCapacity)
	assert.Equal(t, domain.DefaultRoomType, resp.RoomType)
}

// Бронирование 10:00-12:00 поверх занятого 09:00-11:00 отклоняется, занятость не меняется
func TestExecute_ConflictOnCommit(t *testing.T) {
	f := newFixture(lectureRoom())

	_, err := f.uc.Execute(context.Background(), request("10:00", "12:00"))
	require.ErrorIs(t, err, ErrConflictOnCommit)
	assert.True(t, IsRetryable(err))

	assert.Equal(t, 0, f.store.bookingCount())
	assert.Len(t, f.store.occupancyOf("a-101"), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CommitResults.WithLabelValues(outcomeConflict)))
}

func TestExecute_CapacityRecheck(t *testing.T) {
	room := lectureRoom()
	room.Capacity = ptr.Ptr(20)
	f := newFixture(room)

	_, err := f.uc.Execute(context.Background(), request("13:00", "14:00"))
	require.ErrorIs(t, err, ErrConflictOnCommit)
	assert.Equal(t, 0, f.store.bookingCount())
}

func TestExecute_RoomNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("13:00", "14:00"))
	require.ErrorIs(t, err, ErrRoomNotFound)
	assert.False(t, IsRetryable(err))
}

func TestExecute_AppendConflictRollsBack(t *testing.T) {
	f := newFixture(lectureRoom())
	f.store.hideOccupancy = true

	_, err := f.uc.Execute(context.Background(), request("10:00", "12:00"))
	require.ErrorIs(t, err, ErrConflictOnCommit)
	assert.Equal(t, 0, f.store.bookingCount(), "booking row must be rolled back with the occupancy")
}

func TestExecute_PersistenceFailureRollsBack(t *testing.T) {
	f := newFixture(lectureRoom())
	f.store.appendErr = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), request("13:00", "14:00"))
	require.ErrorIs(t, err, ErrPersistence)
	assert.False(t, IsRetryable(err))
	assert.Equal(t, 0, f.store.bookingCount())
	assert.Len(t, f.store.occupancyOf("a-101"), 1)
}

func TestExecute_RoomBusy(t *testing.T) {
	f := newFixture(lectureRoom())

	held, err := f.locker.Acquire(context.Background(), lock.RoomDayKey("a-101", domain.Monday))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("13:00", "14:00"))
	require.ErrorIs(t, err, ErrRoomBusy)
	assert.True(t, IsRetryable(err))

	require.NoError(t, held.Release(context.Background()))

	_, err = f.uc.Execute(context.Background(), request("13:00", "14:00"))
	require.NoError(t, err)
}

func TestExecute_ReleasesLockAfterFailure(t *testing.T) {
	f := newFixture(lectureRoom())

	_, err := f.uc.Execute(context.Background(), request("10:00", "12:00"))
	require.ErrorIs(t, err, ErrConflictOnCommit)

	l, err := f.locker.Acquire(context.Background(), lock.RoomDayKey("a-101", domain.Monday))
	require.NoError(t, err)
	require.NoError(t, l.Release(context.Background()))
}

func TestExecute_TransactionErrors(t *testing.T) {
	tests := []struct {
		name    string
		txErr   error
		wantErr error
	}{
		{"serialization retries exhausted", fmt.Errorf("%w: 4 attempts", txmanager.ErrRetriesExhausted), ErrConflictOnCommit},
		{"begin failure", errors.New("connection refused"), ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(lectureRoom())
			f.tx.err = tt.txErr

			_, err := f.uc.Execute(context.Background(), request("13:00", "14:00"))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConcurrentCommitsSameSlot(t *testing.T) {
	f := newFixture(lectureRoom())
	f.locker = lock.NewLocalLocker(lock.Options{TTL: time.Minute, RetryCount: 1000, RetryDelay: time.Millisecond})
	f.uc.locker = f.locker

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		confirmed int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request("13:00", "15:00")
			req.Requester.UID = fmt.Sprintf("u-%d", i)

			_, err := f.uc.Execute(context.Background(), req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				confirmed++
			case errors.Is(err, ErrConflictOnCommit):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.store.bookingCount())
	assert.Len(t, f.store.occupancyOf("a-101"), 2)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"empty room", func(r *Request) { r.RoomID = " " }},
		{"bad day", func(r *Request) { r.Day = "Funday" }},
		{"missing end", func(r *Request) { r.EndTime = types.TimeString{} }},
		{"end before start", func(r *Request) {
			r.StartTime = types.MustTimeString("12:00")
			r.EndTime = types.MustTimeString("11:00")
		}},
		{"zero capacity", func(r *Request) { r.RequiredCapacity = 0 }},
		{"huge capacity", func(r *Request) { r.RequiredCapacity = domain.MaxRequiredPeople + 1 }},
		{"no requester", func(r *Request) { r.Requester.UID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(lectureRoom())
			req := request("13:00", "14:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.store.bookingCount())
		})
	}
}
