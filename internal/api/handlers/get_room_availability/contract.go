package get_room_availability

import (
	"context"

	getRoomAvailability "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/get_room_availability"
)

type GetRoomAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getRoomAvailability.Request) (*getRoomAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
