package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/catalog/models"
)

// Service каталог комнат: снимок инвентаря с заполненными метаданными
type Service struct {
	roomRepo RoomRepository
	defaults *domain.RoomDefaults
	logger   Logger
}

// NewService создает сервис каталога
// Если defaults == nil, используется запасное значение (40 мест, лекционная)
func NewService(roomRepo RoomRepository, defaults *domain.RoomDefaults, logger Logger) *Service {
	if defaults == nil {
		defaults = domain.DefaultRoomDefaults()
	}
	return &Service{
		roomRepo: roomRepo,
		defaults: defaults,
		logger:   logger,
	}
}

// Snapshot читает инвентарь и один раз обогащает каждую запись
// Комнаты упорядочены по ID
func (s *Service) Snapshot(ctx context.Context) ([]domain.Room, error) {
	entries, err := s.roomRepo.ListRooms(ctx)
	if err != nil {
		s.logger.Error("Snapshot: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	rooms := make([]domain.Room, 0, len(entries))
	enriched := 0
	for _, entry := range entries {
		if entry.Capacity == nil || entry.Type == nil {
			enriched++
		}
		room := s.defaults.Enrich(entry)
		if err := room.ValidateOccupancy(); err != nil {
			// пересечения в инвентаре не блокируют подбор, время все равно проверяется по каждому периоду
			s.logger.Warn("Snapshot: %v", err)
		}
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].ID < rooms[j].ID
	})

	if enriched > 0 {
		s.logger.Info("Snapshot: %d of %d rooms enriched from defaults", enriched, len(rooms))
	}
	return rooms, nil
}

// ListRooms снимок каталога для HTTP ответа
func (s *Service) ListRooms(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRoomList(rooms), nil
}
