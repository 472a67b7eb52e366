package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/infra/lock"
	roomRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/txmanager"
)

// Результаты фиксации для метрик
const (
	outcomeConfirmed = "confirmed"
	outcomeConflict  = "conflict"
	outcomeBusy      = "busy"
	outcomeInvalid   = "invalid"
	outcomeNotFound  = "not_found"
	outcomeError     = "error"
)

// UseCase use case для записи бронирования выбранной комнаты
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	defaults    RoomDefaults
	locker      Locker
	txManager   TransactionManager
	metrics     Metrics
	opts        Options
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	defaults RoomDefaults,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.CommitTimeout <= 0 {
		opts.CommitTimeout = DefaultOptions().CommitTimeout
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		defaults:    defaults,
		locker:      locker,
		txManager:   txManager,
		metrics:     metrics,
		opts:        opts,
		logger:      logger,
	}
}

// Execute записывает бронирование и период занятости комнаты атомарно
// Запись сериализуется блокировкой комнаты на день и сериализуемой транзакцией,
// занятость перепроверяется на момент записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveCommit(outcomeInvalid)
		return nil, err
	}

	uc.logger.Info("CreateBooking: room=%s, day=%s, time=%s-%s, capacity=%d, requester=%s",
		req.RoomID, req.Day, req.StartTime, req.EndTime, req.RequiredCapacity, req.Requester.UID)

	// 2. Берем эксклюзивную блокировку комнаты на день
	key := lock.RoomDayKey(req.RoomID, req.Day)
	lockStart := time.Now()
	roomLock, err := uc.locker.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			uc.metrics.ObserveLockWait("busy", time.Since(lockStart))
			uc.metrics.ObserveCommit(outcomeBusy)
			uc.logger.Warn("CreateBooking: room %s is busy: %v", key, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrRoomBusy, key, err)
		}
		uc.metrics.ObserveLockWait("error", time.Since(lockStart))
		uc.metrics.ObserveCommit(outcomeError)
		uc.logger.Error("CreateBooking: failed to acquire lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: acquire lock: %w", ErrPersistence, err)
	}
	uc.metrics.ObserveLockWait("acquired", time.Since(lockStart))
	defer uc.release(roomLock)

	// 3. Записываем в сериализуемой транзакции с таймаутом
	commitCtx, cancel := context.WithTimeout(ctx, uc.opts.CommitTimeout)
	defer cancel()

	var result *domain.Booking
	err = uc.txManager.DoSerializable(commitCtx, func(txCtx context.Context) error {
		created, err := uc.commit(txCtx, req)
		if err != nil {
			return err
		}
		result = created
		return nil
	})

	if err != nil {
		err = uc.classify(commitCtx, err)
		uc.metrics.ObserveCommit(outcomeFor(err))
		return nil, err
	}

	uc.metrics.ObserveCommit(outcomeConfirmed)
	uc.logger.Info("CreateBooking: successfully created booking id=%d for room=%s", result.ID, result.RoomID)

	return toResponse(result), nil
}

// commit шаги внутри транзакции, любая ошибка откатывает обе записи
func (uc *UseCase) commit(txCtx context.Context, req *Request) (*domain.Booking, error) {
	// 3.1. Читаем комнату с блокировкой строки
	entry, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room %s not found", req.RoomID)
			return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, req.RoomID)
		}
		uc.logger.Error("CreateBooking: failed to load room %s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: load room: %w", ErrPersistence, err)
	}
	room := uc.defaults.Enrich(*entry)

	// 3.2. Перепроверяем вместимость по сохраненной комнате
	if room.Capacity < req.RequiredCapacity {
		uc.logger.Warn("CreateBooking: room %s capacity %d is less than required %d",
			room.ID, room.Capacity, req.RequiredCapacity)
		return nil, fmt.Errorf("%w: room %s capacity %d is less than required %d",
			ErrConflictOnCommit, room.ID, room.Capacity, req.RequiredCapacity)
	}

	// 3.3. Читаем занятость комнаты на день с блокировкой и перепроверяем пересечение
	periods, err := uc.roomRepo.ListOccupancy(txCtx, room.ID, req.Day)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load occupancy of room %s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: load occupancy: %w", ErrPersistence, err)
	}
	room.Occupancy = periods

	if conflict, found := room.FindConflict(req.Day, req.StartTime, req.EndTime); found {
		uc.logger.Warn("CreateBooking: room %s already booked on %s %s-%s by %s",
			room.ID, conflict.Day, conflict.StartTime, conflict.EndTime, conflict.Requester)
		return nil, fmt.Errorf("%w: room %s already booked on %s %s-%s",
			ErrConflictOnCommit, room.ID, conflict.Day, conflict.StartTime, conflict.EndTime)
	}

	// 3.4. Создаем бронирование с денормализацией данных комнаты
	booking := &domain.Booking{
		RoomID:           room.ID,
		Day:              req.Day,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		RequiredCapacity: req.RequiredCapacity,
		Purpose:          req.Purpose,
		Requester:        req.Requester,
		Department:       req.Department,
		Status:           domain.StatusConfirmed,
		RoomCapacity:     room.Capacity,
		RoomType:         room.Type,
		RoomBuilding:     room.Building,
	}

	created, err := uc.bookingRepo.Create(txCtx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: create booking: %w", ErrPersistence, err)
	}

	// 3.5. Добавляем период занятости (условная вставка)
	if err := uc.roomRepo.AppendOccupancy(txCtx, room.ID, created.Period()); err != nil {
		if errors.Is(err, roomRepo.ErrOccupancyConflict) {
			uc.logger.Warn("CreateBooking: occupancy conflict on append for room %s: %v", room.ID, err)
			return nil, fmt.Errorf("%w: %w", ErrConflictOnCommit, err)
		}
		uc.logger.Error("CreateBooking: failed to append occupancy for room %s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: append occupancy: %w", ErrPersistence, err)
	}

	return created, nil
}

// classify приводит ошибку транзакции к таксономии use case
func (uc *UseCase) classify(commitCtx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrConflictOnCommit),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrPersistence):
		return err
	case errors.Is(err, txmanager.ErrRetriesExhausted):
		uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
		return fmt.Errorf("%w: %v", ErrConflictOnCommit, err)
	case errors.Is(commitCtx.Err(), context.DeadlineExceeded):
		uc.logger.Error("CreateBooking: commit timed out after %s: %v", uc.opts.CommitTimeout, err)
		return fmt.Errorf("%w: commit timed out: %v", ErrPersistence, err)
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
}

// release отпускает блокировку независимо от исхода записи
func (uc *UseCase) release(l lock.Lock) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := l.Release(ctx); err != nil {
		if errors.Is(err, lock.ErrLockLost) {
			uc.logger.Error("CreateBooking: lock %s expired before release", l.Key())
			return
		}
		uc.logger.Warn("CreateBooking: failed to release lock %s: %v", l.Key(), err)
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrConflictOnCommit):
		return outcomeConflict
	case errors.Is(err, ErrRoomNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}
