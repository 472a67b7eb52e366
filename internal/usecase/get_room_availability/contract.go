package get_room_availability

import (
	"context"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error)
	ListOccupancy(ctx context.Context, roomID string, day domain.Day) ([]domain.OccupancyPeriod, error)
}

// RoomDefaults заполняет отсутствующие метаданные комнаты
type RoomDefaults interface {
	Enrich(entry domain.CatalogEntry) domain.Room
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
