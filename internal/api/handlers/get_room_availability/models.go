package get_room_availability

import (
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/catalog/models"
	getRoomAvailability "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/get_room_availability"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Free      bool   `json:"free"`
}

// WindowResponse HTTP response model
type WindowResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Room        models.RoomResponse `json:"room"`
	Day         string              `json:"day"`
	Slots       []SlotResponse      `json:"slots"`
	FreeWindows []WindowResponse    `json:"freeWindows"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getRoomAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Room:        models.FromDomainRoom(resp.Room),
		Day:         resp.Day.String(),
		Slots:       make([]SlotResponse, len(resp.Slots)),
		FreeWindows: make([]WindowResponse, len(resp.FreeWindows)),
	}

	for i, slot := range resp.Slots {
		result.Slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Free:      slot.Free,
		}
	}

	for i, w := range resp.FreeWindows {
		result.FreeWindows[i] = WindowResponse{
			StartTime:       w.StartTime.String(),
			EndTime:         w.EndTime.String(),
			DurationMinutes: w.Minutes(),
		}
	}

	return result
}
