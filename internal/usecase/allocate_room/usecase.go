package allocate_room

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
)

// Результаты распределения для метрик
const (
	outcomeAllocated   = "allocated"
	outcomeNoCandidate = "no_candidate"
	outcomeExhausted   = "exhausted"
	outcomeError       = "error"
)

// UseCase use case подбора и записи комнаты одним вызовом
type UseCase struct {
	finder    Finder
	committer Committer
	profiles  ProfileClient
	metrics   Metrics
	opts      Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
// profiles может быть nil, тогда данные автора не дополняются
func NewUseCase(
	finder Finder,
	committer Committer,
	profiles ProfileClient,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	return &UseCase{
		finder:    finder,
		committer: committer,
		profiles:  profiles,
		metrics:   metrics,
		opts:      opts,
		logger:    logger,
	}
}

// Execute подбирает лучшую комнату и записывает бронирование
// Проигранная гонка при записи перезапускает подбор по свежему снимку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	requester := domain.Requester{
		UID:  strings.TrimSpace(req.Requester.UID),
		Name: strings.TrimSpace(req.Requester.Name),
	}
	if requester.UID == "" {
		return nil, fmt.Errorf("%w: requester uid is required", ErrInvalidInput)
	}

	// 2. Дополняем имя и кафедру из профиля
	search := req.Search
	uc.fillFromProfile(ctx, &requester, &search)

	// 3. Строим запрос на подбор
	params := domain.BookingRequestParams{
		Day:               search.Day,
		StartTime:         search.StartTime,
		EndTime:           search.EndTime,
		DurationHours:     search.DurationHours,
		RequiredCapacity:  search.RequiredCapacity,
		RoomType:          search.RoomType,
		Department:        search.Department,
		PreferredBuilding: search.PreferredBuilding,
	}
	bookingReq, err := domain.NewBookingRequest(params)
	if err != nil {
		uc.logger.Warn("AllocateRoom: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	uc.logger.Info("AllocateRoom: day=%s, time=%s-%s, capacity=%d, requester=%s",
		bookingReq.Day, bookingReq.StartTime, bookingReq.EndTime, bookingReq.RequiredCapacity, requester.UID)

	// 4. Подбор и запись, пока не кончатся попытки
	var lastErr error
	for attempt := 1; attempt <= uc.opts.MaxAttempts; attempt++ {
		result, err := uc.finder.Find(ctx, bookingReq)
		if err != nil {
			uc.metrics.ObserveAttempts(outcomeError, attempt)
			return nil, fmt.Errorf("%w: find room: %w", ErrInternal, err)
		}

		if !result.Success || result.BestMatch == nil {
			uc.logger.Info("AllocateRoom: no suitable room after %d attempt(s): %s", attempt, result.Message)
			uc.metrics.ObserveAttempts(outcomeNoCandidate, attempt)
			return &Response{Success: false, Result: result, Attempts: attempt}, nil
		}

		best := result.BestMatch.Room
		booking, err := uc.committer.Execute(ctx, &create_booking.Request{
			RoomID:           best.ID,
			Day:              bookingReq.Day,
			StartTime:        bookingReq.StartTime,
			EndTime:          bookingReq.EndTime,
			RequiredCapacity: bookingReq.RequiredCapacity,
			Purpose:          req.Purpose,
			Requester:        requester,
			Department:       bookingReq.Department,
		})
		if err == nil {
			uc.logger.Info("AllocateRoom: booked room=%s, booking_id=%d, attempt=%d", best.ID, booking.ID, attempt)
			uc.metrics.ObserveAttempts(outcomeAllocated, attempt)
			return &Response{Success: true, Booking: booking, Result: result, Attempts: attempt}, nil
		}

		if !create_booking.IsRetryable(err) {
			uc.metrics.ObserveAttempts(outcomeError, attempt)
			return nil, err
		}

		uc.logger.Warn("AllocateRoom: lost race for room %s on attempt %d: %v", best.ID, attempt, err)
		lastErr = err
	}

	uc.logger.Warn("AllocateRoom: attempts exhausted after %d tries: %v", uc.opts.MaxAttempts, lastErr)
	uc.metrics.ObserveAttempts(outcomeExhausted, uc.opts.MaxAttempts)
	return nil, fmt.Errorf("%w: %w: %d attempts, last: %v",
		ErrAttemptsExhausted, create_booking.ErrConflictOnCommit, uc.opts.MaxAttempts, lastErr)
}

// fillFromProfile заполняет пустые имя и кафедру, ошибки профиля только логируются
func (uc *UseCase) fillFromProfile(ctx context.Context, requester *domain.Requester, search *find_room.Request) {
	if uc.profiles == nil {
		return
	}
	if requester.Name != "" && strings.TrimSpace(search.Department) != "" {
		return
	}

	profile, err := uc.profiles.GetProfileWithGracefulDegradation(ctx, requester.UID)
	if err != nil {
		uc.logger.Warn("AllocateRoom: continuing without profile for uid=%s: %v", requester.UID, err)
		return
	}
	if profile == nil {
		return
	}

	if requester.Name == "" {
		requester.Name = profile.Name
	}
	if strings.TrimSpace(search.Department) == "" {
		search.Department = profile.Department
	}
}
