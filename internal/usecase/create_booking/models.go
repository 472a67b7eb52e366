package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// Request модель запроса на запись бронирования выбранной комнаты
type Request struct {
	RoomID           string           // ID выбранной комнаты
	Day              domain.Day       // День недели
	StartTime        types.TimeString // Начало, например "09:00"
	EndTime          types.TimeString // Конец, не включается в интервал
	RequiredCapacity int              // Сколько мест нужно
	Purpose          string           // Цель бронирования (опционально)
	Requester        domain.Requester // Автор запроса
	Department       string           // Кафедра автора (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64            // ID бронирования
	RoomID           string           // ID комнаты
	Day              domain.Day       // День недели
	StartTime        types.TimeString // Начало
	EndTime          types.TimeString // Конец
	RequiredCapacity int              // Запрошенная вместимость
	Purpose          string           // Цель
	Requester        domain.Requester // Автор
	Department       string           // Кафедра
	Status           string           // Статус бронирования

	// Денормализованные данные комнаты на момент записи
	RoomCapacity int
	RoomType     domain.RoomType
	RoomBuilding string

	CreatedAt time.Time // Время создания
}

// Options параметры фиксации
type Options struct {
	CommitTimeout time.Duration // таймаут транзакции, должен быть меньше TTL блокировки
}

// DefaultOptions таймаут фиксации 5с
func DefaultOptions() Options {
	return Options{CommitTimeout: 5 * time.Second}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		RoomID:           b.RoomID,
		Day:              b.Day,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		RequiredCapacity: b.RequiredCapacity,
		Purpose:          b.Purpose,
		Requester:        b.Requester,
		Department:       b.Department,
		Status:           string(b.Status),
		RoomCapacity:     b.RoomCapacity,
		RoomType:         b.RoomType,
		RoomBuilding:     b.RoomBuilding,
		CreatedAt:        b.CreatedAt,
	}
}
