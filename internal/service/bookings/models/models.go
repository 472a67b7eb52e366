package models

import (
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Request модели

// GetRequesterBookingsRequest запрос на получение бронирований автора
type GetRequesterBookingsRequest struct {
	CallerUID    string `json:"-"`
	RequesterUID string `json:"userId"`
}

// Response модели

// RequesterResponse автор бронирования
type RequesterResponse struct {
	UID  string `json:"uid"`
	Name string `json:"name,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64             `json:"bookingId"`
	RoomID           string            `json:"roomId"`
	Day              string            `json:"day"`
	StartTime        string            `json:"startTime"` // "09:00"
	EndTime          string            `json:"endTime"`   // "11:30"
	RequiredCapacity int               `json:"requiredCapacity"`
	Purpose          string            `json:"purpose,omitempty"`
	Requester        RequesterResponse `json:"requester"`
	Department       string            `json:"department,omitempty"`
	Status           string            `json:"status"`

	// Денормализованные данные комнаты на момент бронирования
	RoomCapacity int    `json:"roomCapacity"`
	RoomType     string `json:"roomType"`
	RoomBuilding string `json:"roomBuilding,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		RoomID:           b.RoomID,
		Day:              b.Day.String(),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		RequiredCapacity: b.RequiredCapacity,
		Purpose:          b.Purpose,
		Requester: RequesterResponse{
			UID:  b.Requester.UID,
			Name: b.Requester.Name,
		},
		Department:   b.Department,
		Status:       string(b.Status),
		RoomCapacity: b.RoomCapacity,
		RoomType:     string(b.RoomType),
		RoomBuilding: b.RoomBuilding,
		CreatedAt:    b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if b == nil {
			continue
		}
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
