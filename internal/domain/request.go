package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// BookingRequest разовый запрос на подбор комнаты, не сохраняется
type BookingRequest struct {
	Day               Day
	StartTime         types.TimeString
	EndTime           types.TimeString
	RequiredCapacity  int
	RoomType          RoomType
	Department        string
	PreferredBuilding string
}

// BookingRequestParams сырые параметры запроса
// EndTime имеет приоритет над DurationHours
type BookingRequestParams struct {
	Day               string
	StartTime         string
	EndTime           string
	DurationHours     float64
	RequiredCapacity  int
	RoomType          string
	Department        string
	PreferredBuilding string
}

// NewBookingRequest строит и валидирует запрос
// Некорректные время, длительность и вместимость отклоняются, значения по умолчанию не подставляются
func NewBookingRequest(p BookingRequestParams) (*BookingRequest, error) {
	day, err := ParseDay(p.Day)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(p.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}

	var end types.TimeString
	if strings.TrimSpace(p.EndTime) != "" {
		end, err = types.NewTimeStringFromString(p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidRequest, err)
		}
	} else {
		end, err = start.AddHours(p.DurationHours)
		if err != nil {
			return nil, fmt.Errorf("%w: duration: %v", ErrInvalidRequest, err)
		}
	}

	roomType, err := ParseRequestedRoomType(p.RoomType)
	if err != nil {
		return nil, err
	}

	req := &BookingRequest{
		Day:               day,
		StartTime:         start,
		EndTime:           end,
		RequiredCapacity:  p.RequiredCapacity,
		RoomType:          roomType,
		Department:        strings.TrimSpace(p.Department),
		PreferredBuilding: strings.TrimSpace(p.PreferredBuilding),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate проверяет инварианты запроса
func (r *BookingRequest) Validate() error {
	if !r.Day.IsValid() {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidRequest, r.Day)
	}
	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidRequest, err)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidRequest, r.StartTime, r.EndTime)
	}
	if r.RequiredCapacity <= 0 {
		return fmt.Errorf("%w: requiredCapacity must be positive", ErrInvalidRequest)
	}
	if r.RoomType == "" {
		return fmt.Errorf("%w: roomType is required", ErrInvalidRequest)
	}
	return nil
}

// DurationMinutes длительность запрошенного окна в минутах
func (r *BookingRequest) DurationMinutes() int {
	return r.EndTime.Minutes() - r.StartTime.Minutes()
}
