package get_room_availability

import (
	"context"
	"errors"
	"fmt"

	roomRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/room"
)

// UseCase use case для получения свободных окон комнаты на день
type UseCase struct {
	roomRepo RoomRepository
	defaults RoomDefaults
	opts     Options
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	defaults RoomDefaults,
	opts Options,
	logger Logger,
) *UseCase {
	def := DefaultOptions()
	if opts.DayStart.IsZero() || opts.DayEnd.IsZero() || !opts.DayStart.IsBefore(opts.DayEnd) {
		opts.DayStart, opts.DayEnd = def.DayStart, def.DayEnd
	}
	if opts.SlotMinutes <= 0 {
		opts.SlotMinutes = def.SlotMinutes
	}
	return &UseCase{
		roomRepo: roomRepo,
		defaults: defaults,
		opts:     opts,
		logger:   logger,
	}
}

// Execute выполняет use case получения свободных окон комнаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	day, slotMinutes, err := validateRequest(req, uc.opts.SlotMinutes)
	if err != nil {
		uc.logger.Warn("GetRoomAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetRoomAvailability: room=%s, day=%s, slot=%dm", req.RoomID, day, slotMinutes)

	// 2. Получаем комнату
	entry, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetRoomAvailability: room %s not found", req.RoomID)
			return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, req.RoomID)
		}
		uc.logger.Error("GetRoomAvailability: failed to get room %s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	room := uc.defaults.Enrich(*entry)

	// 3. Получаем занятость комнаты на день
	periods, err := uc.roomRepo.ListOccupancy(ctx, room.ID, day)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to get occupancy of room %s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to get occupancy: %v", ErrInternal, err)
	}
	room.Occupancy = periods

	// 4. Генерируем сетку слотов и помечаем занятые
	slots, err := generateSlots(uc.opts.DayStart, uc.opts.DayEnd, slotMinutes)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	markOccupied(slots, periods)

	windows := freeWindows(uc.opts.DayStart, uc.opts.DayEnd, periods)

	uc.logger.Info("GetRoomAvailability: room=%s, day=%s, slots=%d, free windows=%d",
		room.ID, day, len(slots), len(windows))

	return &Response{
		Room:        room,
		Day:         day,
		Slots:       slots,
		FreeWindows: windows,
	}, nil
}
