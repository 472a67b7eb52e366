package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

// StatusConfirmed единственный статус: бронирование подтверждается в момент записи
const StatusConfirmed BookingStatus = "CONFIRMED"

// Requester идентичность автора запроса, передается внешним сервисом профилей как есть
type Requester struct {
	UID  string
	Name string
}

// Booking represents a committed room booking
type Booking struct {
	ID               int64
	RoomID           string
	Day              Day
	StartTime        types.TimeString
	EndTime          types.TimeString
	RequiredCapacity int
	Purpose          string
	Requester        Requester
	Department       string
	Status           BookingStatus

	// Denormalized data for history
	RoomCapacity int
	RoomType     RoomType
	RoomBuilding string

	CreatedAt time.Time
}

// IsConfirmed returns true if the booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// Period возвращает период занятости, который бронирование добавляет комнате
func (b *Booking) Period() OccupancyPeriod {
	return OccupancyPeriod{
		Day:        b.Day,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		BookingID:  b.ID,
		Requester:  b.Requester.DisplayName(),
		Department: b.Department,
	}
}

// DisplayName имя автора запроса, при отсутствии имени используется UID
func (r Requester) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.UID
}
