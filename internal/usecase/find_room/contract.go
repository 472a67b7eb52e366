package find_room

import (
	"context"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Catalog снимок каталога комнат
type Catalog interface {
	Snapshot(ctx context.Context) ([]domain.Room, error)
}

// Metrics интерфейс метрик подбора
type Metrics interface {
	ObserveAllocation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
