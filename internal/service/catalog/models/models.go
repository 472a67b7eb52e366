package models

import "github.com/m04kA/SMC-RoomAllocationService/internal/domain"

// OccupancyResponse период занятости комнаты
type OccupancyResponse struct {
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	BookingID  int64  `json:"bookingId,omitempty"`
	Requester  string `json:"requester,omitempty"`
	Department string `json:"department,omitempty"`
}

// RoomResponse комната каталога
type RoomResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Capacity           int                 `json:"capacity"`
	Type               string              `json:"type"`
	Building           string              `json:"building,omitempty"`
	Floor              int                 `json:"floor"`
	DepartmentPriority []string            `json:"departmentPriority"`
	Occupancy          []OccupancyResponse `json:"occupancy"`
}

// RoomListResponse список комнат каталога
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

// FromDomainRoom конвертирует комнату в DTO
func FromDomainRoom(r domain.Room) RoomResponse {
	priority := r.DepartmentPriority
	if priority == nil {
		priority = []string{}
	}

	occupancy := make([]OccupancyResponse, 0, len(r.Occupancy))
	for _, p := range r.Occupancy {
		occupancy = append(occupancy, FromDomainOccupancy(p))
	}

	return RoomResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Capacity:           r.Capacity,
		Type:               string(r.Type),
		Building:           r.Building,
		Floor:              r.Floor,
		DepartmentPriority: priority,
		Occupancy:          occupancy,
	}
}

// FromDomainOccupancy конвертирует период занятости в DTO
func FromDomainOccupancy(p domain.OccupancyPeriod) OccupancyResponse {
	return OccupancyResponse{
		Day:        p.Day.String(),
		StartTime:  p.StartTime.String(),
		EndTime:    p.EndTime.String(),
		BookingID:  p.BookingID,
		Requester:  p.Requester,
		Department: p.Department,
	}
}

// FromDomainRoomList конвертирует список комнат в DTO
func FromDomainRoomList(rooms []domain.Room) *RoomListResponse {
	resp := &RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
		Total: len(rooms),
	}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, FromDomainRoom(r))
	}
	return resp
}
