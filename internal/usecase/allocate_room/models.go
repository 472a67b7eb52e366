package allocate_room

import (
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
)

// Request модель запроса на распределение комнаты
type Request struct {
	Search    find_room.Request // Параметры подбора
	Purpose   string            // Цель бронирования (опционально)
	Requester domain.Requester  // Автор запроса, UID обязателен
}

// Response модель ответа распределения
// При Success=false Booking пуст, а Result содержит причины отказа
type Response struct {
	Success  bool
	Booking  *create_booking.Response
	Result   domain.AllocationResult
	Attempts int
}

// BookingID ID созданного бронирования или 0
func (r *Response) BookingID() int64 {
	if r.Booking == nil {
		return 0
	}
	return r.Booking.ID
}

// Options параметры распределения
type Options struct {
	MaxAttempts int // сколько раз перезапускать подбор после проигранной гонки
}

// DefaultOptions три попытки
func DefaultOptions() Options {
	return Options{MaxAttempts: 3}
}
