package search_rooms

import (
	"context"

	findRoom "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
)

type FindRoomUseCase interface {
	Execute(ctx context.Context, req *findRoom.Request) (*findRoom.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
