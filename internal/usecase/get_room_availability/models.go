package get_room_availability

import (
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// Допустимый шаг сетки в минутах
const (
	MinSlotMinutes = 5
	MaxSlotMinutes = 240
)

// Request модель запроса свободных окон комнаты на день
type Request struct {
	RoomID      string // ID комнаты
	Day         string // "Monday" или "mon"
	SlotMinutes int    // шаг сетки, 0 - из конфигурации
}

// Response модель ответа с сеткой слотов и свободными окнами
type Response struct {
	Room        domain.Room
	Day         domain.Day
	Slots       []Slot   // сетка учебного дня с фиксированным шагом
	FreeWindows []Window // максимальные свободные интервалы внутри учебного дня
}

// Slot модель временного слота сетки
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Free      bool
}

// Window свободный интервал [StartTime, EndTime)
type Window struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Minutes длительность окна в минутах
func (w Window) Minutes() int {
	return w.EndTime.Minutes() - w.StartTime.Minutes()
}

// Options границы учебного дня и шаг сетки
type Options struct {
	DayStart    types.TimeString
	DayEnd      types.TimeString
	SlotMinutes int
}

// DefaultOptions учебный день 08:00-20:00 с шагом 30 минут
func DefaultOptions() Options {
	return Options{
		DayStart:    types.MustTimeString("08:00"),
		DayEnd:      types.MustTimeString("20:00"),
		SlotMinutes: 30,
	}
}
