package search_rooms

import (
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/catalog/models"
	findRoom "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
)

// SearchRoomsRequest HTTP request model
type SearchRoomsRequest struct {
	Day               string  `json:"day"`                     // "Wednesday" или "wed"
	StartTime         string  `json:"startTime"`               // "13:00"
	EndTime           string  `json:"endTime,omitempty"`       // "16:00", приоритетнее durationHours
	DurationHours     float64 `json:"durationHours,omitempty"` // 2.5
	RequiredCapacity  int     `json:"requiredCapacity"`
	RoomType          string  `json:"roomType,omitempty"` // ANY по умолчанию
	Department        string  `json:"department,omitempty"`
	PreferredBuilding string  `json:"preferredBuilding,omitempty"`
}

// NormalizedRequest запрос после нормализации
type NormalizedRequest struct {
	Day               string `json:"day"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	RequiredCapacity  int    `json:"requiredCapacity"`
	RoomType          string `json:"roomType"`
	Department        string `json:"department,omitempty"`
	PreferredBuilding string `json:"preferredBuilding,omitempty"`
}

// SearchRoomsResponse HTTP response model
type SearchRoomsResponse struct {
	Request NormalizedRequest `json:"request"`
	*models.AllocationResultResponse
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SearchRoomsRequest) ToUseCaseRequest() *findRoom.Request {
	return &findRoom.Request{
		Day:               r.Day,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		DurationHours:     r.DurationHours,
		RequiredCapacity:  r.RequiredCapacity,
		RoomType:          r.RoomType,
		Department:        r.Department,
		PreferredBuilding: r.PreferredBuilding,
	}
}

// FromNormalizedRequest конвертирует нормализованный запрос в DTO
func FromNormalizedRequest(req domain.BookingRequest) NormalizedRequest {
	return NormalizedRequest{
		Day:               req.Day.String(),
		StartTime:         req.StartTime.String(),
		EndTime:           req.EndTime.String(),
		RequiredCapacity:  req.RequiredCapacity,
		RoomType:          string(req.RoomType),
		Department:        req.Department,
		PreferredBuilding: req.PreferredBuilding,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *findRoom.Response) *SearchRoomsResponse {
	return &SearchRoomsResponse{
		Request:                  FromNormalizedRequest(resp.Request),
		AllocationResultResponse: models.FromDomainAllocationResult(resp.Result),
	}
}
