package find_room

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomAllocationService/internal/allocation"
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Результаты подбора для метрик
const (
	outcomeFound       = "found"
	outcomeNoCandidate = "no_candidate"
	outcomeInvalid     = "invalid"
	outcomeError       = "error"
)

// UseCase use case подбора лучшей комнаты без записи
type UseCase struct {
	catalog Catalog
	metrics Metrics
	opts    allocation.Options
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog Catalog, metrics Metrics, opts allocation.Options, logger Logger) *UseCase {
	return &UseCase{
		catalog: catalog,
		metrics: metrics,
		opts:    opts,
		logger:  logger,
	}
}

// Execute строит запрос, берет снимок каталога и подбирает комнату
// Отсутствие подходящей комнаты не ошибка: Result.Success=false
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и построение запроса
	if req == nil {
		uc.metrics.ObserveAllocation(outcomeInvalid)
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	bookingReq, err := domain.NewBookingRequest(req.toParams())
	if err != nil {
		uc.logger.Warn("FindRoom: validation failed: %v", err)
		uc.metrics.ObserveAllocation(outcomeInvalid)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	result, err := uc.Find(ctx, bookingReq)
	if err != nil {
		return nil, err
	}

	return &Response{Request: *bookingReq, Result: result}, nil
}

// Find подбирает комнату по уже провалидированному запросу на свежем снимке каталога
func (uc *UseCase) Find(ctx context.Context, req *domain.BookingRequest) (domain.AllocationResult, error) {
	uc.logger.Info("FindRoom: day=%s, time=%s-%s, capacity=%d, type=%s, department=%q, building=%q",
		req.Day, req.StartTime, req.EndTime, req.RequiredCapacity, req.RoomType, req.Department, req.PreferredBuilding)

	// 2. Снимок каталога
	rooms, err := uc.catalog.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("FindRoom: failed to load catalog: %v", err)
		uc.metrics.ObserveAllocation(outcomeError)
		return domain.AllocationResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Фильтрация и ранжирование
	result := allocation.FindBestFitRoomWithOptions(req, rooms, uc.opts)

	if result.Success {
		uc.metrics.ObserveAllocation(outcomeFound)
		uc.logger.Info("FindRoom: best match %s (capacity %d, %s), %d available",
			result.BestMatch.Room.ID, result.BestMatch.Room.Capacity, result.BestMatch.FitQuality.Label, result.TotalAvailable)
	} else {
		uc.metrics.ObserveAllocation(outcomeNoCandidate)
		uc.logger.Info("FindRoom: %s", result.Message)
	}

	return result, nil
}
