package get_booking

import (
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// BookingDetailsResponse бронирование комнаты с временем в 12-часовом формате
type BookingDetailsResponse struct {
	*models.BookingResponse
	StartDisplay    string `json:"startDisplay,omitempty"` // "1:00 PM"
	EndDisplay      string `json:"endDisplay,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromBooking дополняет DTO бронирования отображаемым временем
// Некорректное время в записи не ломает ответ, поля просто остаются пустыми
func FromBooking(b *models.BookingResponse) *BookingDetailsResponse {
	resp := &BookingDetailsResponse{BookingResponse: b}

	resp.StartDisplay, _ = types.FormatTimeDisplay(b.StartTime)
	resp.EndDisplay, _ = types.FormatTimeDisplay(b.EndTime)

	start, err1 := types.ClockToMinutes(b.StartTime)
	end, err2 := types.ClockToMinutes(b.EndTime)
	if err1 == nil && err2 == nil && end > start {
		resp.DurationMinutes = end - start
	}

	return resp
}
