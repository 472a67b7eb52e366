package catalog

import (
	"context"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// RoomRepository источник инвентаря комнат
type RoomRepository interface {
	ListRooms(ctx context.Context) ([]domain.CatalogEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
