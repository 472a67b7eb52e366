package allocate_room

import (
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/catalog/models"
	allocateRoom "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/allocate_room"
	findRoom "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
)

// AllocateRoomRequest HTTP request model
// Автор запроса берется из заголовков аутентификации
type AllocateRoomRequest struct {
	Day               string  `json:"day"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime,omitempty"`
	DurationHours     float64 `json:"durationHours,omitempty"`
	RequiredCapacity  int     `json:"requiredCapacity"`
	RoomType          string  `json:"roomType,omitempty"`
	Department        string  `json:"department,omitempty"`
	PreferredBuilding string  `json:"preferredBuilding,omitempty"`
	Purpose           string  `json:"purpose,omitempty"`
}

// AllocationBookingResponse созданное бронирование
type AllocationBookingResponse struct {
	ID        int64  `json:"bookingId"`
	RoomID    string `json:"roomId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// AllocateRoomResponse HTTP response model
type AllocateRoomResponse struct {
	Success      bool                         `json:"success"`
	BookingID    int64                        `json:"bookingId,omitempty"`
	Booking      *AllocationBookingResponse   `json:"booking,omitempty"`
	Room         *models.CandidateResponse    `json:"room"`
	Alternatives []models.CandidateResponse   `json:"alternatives"`
	Rejected     models.RejectedRoomsResponse `json:"rejected"`
	Attempts     int                          `json:"attempts"`
	Message      string                       `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Кафедра из тела приоритетнее кафедры из заголовка
func (r *AllocateRoomRequest) ToUseCaseRequest(requester domain.Requester, headerDepartment string) *allocateRoom.Request {
	department := r.Department
	if department == "" {
		department = headerDepartment
	}

	return &allocateRoom.Request{
		Search: findRoom.Request{
			Day:               r.Day,
			StartTime:         r.StartTime,
			EndTime:           r.EndTime,
			DurationHours:     r.DurationHours,
			RequiredCapacity:  r.RequiredCapacity,
			RoomType:          r.RoomType,
			Department:        department,
			PreferredBuilding: r.PreferredBuilding,
		},
		Purpose:   r.Purpose,
		Requester: requester,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *allocateRoom.Response) *AllocateRoomResponse {
	result := models.FromDomainAllocationResult(resp.Result)

	out := &AllocateRoomResponse{
		Success:      resp.Success,
		BookingID:    resp.BookingID(),
		Room:         result.BestMatch,
		Alternatives: result.Alternatives,
		Rejected:     result.RejectedRooms,
		Attempts:     resp.Attempts,
		Message:      result.Message,
	}

	if resp.Booking != nil {
		out.Booking = &AllocationBookingResponse{
			ID:        resp.Booking.ID,
			RoomID:    resp.Booking.RoomID,
			Day:       resp.Booking.Day.String(),
			StartTime: resp.Booking.StartTime.String(),
			EndTime:   resp.Booking.EndTime.String(),
			Status:    resp.Booking.Status,
		}
	}
	return out
}
