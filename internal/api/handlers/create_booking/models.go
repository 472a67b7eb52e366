package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

var errParse = errors.New("parse request")

// CreateBookingRequest HTTP request model
// Автор запроса берется из заголовков аутентификации
type CreateBookingRequest struct {
	RoomID           string  `json:"roomId"`
	Day              string  `json:"day"`                     // "Monday" или "mon"
	StartTime        string  `json:"startTime"`               // "09:00"
	EndTime          string  `json:"endTime,omitempty"`       // "11:00", приоритетнее durationHours
	DurationHours    float64 `json:"durationHours,omitempty"` // 2
	RequiredCapacity int     `json:"requiredCapacity"`
	Purpose          string  `json:"purpose,omitempty"`
	Department       string  `json:"department,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64  `json:"bookingId"`
	RoomID           string `json:"roomId"`
	Day              string `json:"day"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	RequiredCapacity int    `json:"requiredCapacity"`
	Purpose          string `json:"purpose,omitempty"`
	RequesterUID     string `json:"requesterUid"`
	RequesterName    string `json:"requesterName,omitempty"`
	Department       string `json:"department,omitempty"`
	Status           string `json:"status"`
	RoomCapacity     int    `json:"roomCapacity"`
	RoomType         string `json:"roomType"`
	RoomBuilding     string `json:"roomBuilding,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дня и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(requester domain.Requester, headerDepartment string) (*createBooking.Request, error) {
	day, err := domain.ParseDay(r.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: day: %v", errParse, err)
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", errParse, err)
	}

	var end types.TimeString
	if r.EndTime != "" {
		end, err = types.NewTimeStringFromString(r.EndTime)
	} else {
		end, err = start.AddHours(r.DurationHours)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", errParse, err)
	}

	department := r.Department
	if department == "" {
		department = headerDepartment
	}

	return &createBooking.Request{
		RoomID:           r.RoomID,
		Day:              day,
		StartTime:        start,
		EndTime:          end,
		RequiredCapacity: r.RequiredCapacity,
		Purpose:          r.Purpose,
		Requester:        requester,
		Department:       department,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		RoomID:           resp.RoomID,
		Day:              resp.Day.String(),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		RequiredCapacity: resp.RequiredCapacity,
		Purpose:          resp.Purpose,
		RequesterUID:     resp.Requester.UID,
		RequesterName:    resp.Requester.Name,
		Department:       resp.Department,
		Status:           resp.Status,
		RoomCapacity:     resp.RoomCapacity,
		RoomType:         string(resp.RoomType),
		RoomBuilding:     resp.RoomBuilding,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
