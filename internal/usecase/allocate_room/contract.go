package allocate_room

import (
	"context"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
)

// Finder подбор лучшей комнаты по свежему снимку каталога
type Finder interface {
	Find(ctx context.Context, req *domain.BookingRequest) (domain.AllocationResult, error)
}

// Committer запись бронирования выбранной комнаты
type Committer interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// ProfileClient интерфейс для получения профиля автора запроса
type ProfileClient interface {
	GetProfileWithGracefulDegradation(ctx context.Context, uid string) (*profileservice.Profile, error)
}

// Metrics интерфейс метрик попыток распределения
type Metrics interface {
	ObserveAttempts(outcome string, attempts int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
