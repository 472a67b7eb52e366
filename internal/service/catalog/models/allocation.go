package models

import "github.com/m04kA/SMC-RoomAllocationService/internal/domain"

// FitQualityResponse оценка качества подбора для отображения
type FitQualityResponse struct {
	Label string `json:"label"`
	Band  string `json:"band"`
}

// CandidateResponse комната, прошедшая фильтр
type CandidateResponse struct {
	Room       RoomResponse       `json:"room"`
	Score      int                `json:"score"`
	Waste      int                `json:"waste"`
	WasteRatio float64            `json:"wasteRatio"`
	FitQuality FitQualityResponse `json:"fitQuality"`
}

// RejectedRoomResponse комната, не прошедшая фильтр
type RejectedRoomResponse struct {
	Room    RoomResponse `json:"room"`
	Reason  string       `json:"reason"`
	Details string       `json:"details"`
}

// RejectedRoomsResponse отказы, сгруппированные по причине
type RejectedRoomsResponse struct {
	TimeConflict []RejectedRoomResponse `json:"timeConflict"`
	WrongType    []RejectedRoomResponse `json:"wrongType"`
	TooSmall     []RejectedRoomResponse `json:"tooSmall"`
}

// AllocationResultResponse результат подбора комнаты
type AllocationResultResponse struct {
	Success        bool                  `json:"success"`
	BestMatch      *CandidateResponse    `json:"bestMatch"`
	Alternatives   []CandidateResponse   `json:"alternatives"`
	TotalAvailable int                   `json:"totalAvailable"`
	RejectedRooms  RejectedRoomsResponse `json:"rejectedRooms"`
	Message        string                `json:"message,omitempty"`
}

// FromDomainCandidate конвертирует кандидата в DTO
func FromDomainCandidate(c domain.Candidate) CandidateResponse {
	return CandidateResponse{
		Room:       FromDomainRoom(c.Room),
		Score:      c.Score,
		Waste:      c.Waste,
		WasteRatio: c.WasteRatio,
		FitQuality: FitQualityResponse{
			Label: c.FitQuality.Label,
			Band:  string(c.FitQuality.Band),
		},
	}
}

// FromDomainAllocationResult конвертирует результат подбора в DTO
// Пустые группы отдаются как [], а не null
func FromDomainAllocationResult(r domain.AllocationResult) *AllocationResultResponse {
	resp := &AllocationResultResponse{
		Success:        r.Success,
		Alternatives:   make([]CandidateResponse, 0, len(r.Alternatives)),
		TotalAvailable: r.TotalAvailable,
		RejectedRooms: RejectedRoomsResponse{
			TimeConflict: fromRejected(r.RejectedRooms.TimeConflict),
			WrongType:    fromRejected(r.RejectedRooms.WrongType),
			TooSmall:     fromRejected(r.RejectedRooms.TooSmall),
		},
		Message: r.Message,
	}

	if r.BestMatch != nil {
		best := FromDomainCandidate(*r.BestMatch)
		resp.BestMatch = &best
	}
	for _, c := range r.Alternatives {
		resp.Alternatives = append(resp.Alternatives, FromDomainCandidate(c))
	}
	return resp
}

func fromRejected(rooms []domain.RejectedRoom) []RejectedRoomResponse {
	out := make([]RejectedRoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RejectedRoomResponse{
			Room:    FromDomainRoom(r.Room),
			Reason:  string(r.Reason),
			Details: r.Details,
		})
	}
	return out
}
