package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/infra/lock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RoomRepository интерфейс репозитория комнат
// В транзакции GetByID и ListOccupancy блокируют строки (FOR UPDATE)
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error)
	ListOccupancy(ctx context.Context, roomID string, day domain.Day) ([]domain.OccupancyPeriod, error)
	AppendOccupancy(ctx context.Context, roomID string, period domain.OccupancyPeriod) error
}

// RoomDefaults заполняет отсутствующие метаданные комнаты
type RoomDefaults interface {
	Enrich(entry domain.CatalogEntry) domain.Room
}

// Locker интерфейс блокировки комнаты на день
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.Lock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик фиксации
type Metrics interface {
	ObserveCommit(outcome string)
	ObserveLockWait(result string, d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
