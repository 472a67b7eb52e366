package domain

// FitBand полоса качества подбора
type FitBand string

const (
	FitBandBestMatch   FitBand = "best-match"
	FitBandRecommended FitBand = "recommended"
	FitBandAlternative FitBand = "alternative"
	FitBandLastResort  FitBand = "last-resort"
)

// FitQuality описательная оценка того, насколько вместимость комнаты близка к запрошенной
// Только для отображения, на порядок кандидатов не влияет
type FitQuality struct {
	Label string
	Band  FitBand
}

// Candidate комната, прошедшая фильтр доступности
type Candidate struct {
	Room       Room
	Score      int
	Waste      int
	WasteRatio float64
	FitQuality FitQuality
}

// RejectionReason тип причины отказа
type RejectionReason string

const (
	RejectionTimeConflict RejectionReason = "timeConflict"
	RejectionWrongType    RejectionReason = "wrongType"
	RejectionTooSmall     RejectionReason = "tooSmall"
)

// RejectedRoom комната, не прошедшая фильтр, с объяснением
type RejectedRoom struct {
	Room    Room
	Reason  RejectionReason
	Details string
}

// RejectedRooms отклоненные комнаты, сгруппированные по причине
type RejectedRooms struct {
	TimeConflict []RejectedRoom
	WrongType    []RejectedRoom
	TooSmall     []RejectedRoom
}

// Add добавляет комнату в группу по ее причине
func (r *RejectedRooms) Add(rejected RejectedRoom) {
	switch rejected.Reason {
	case RejectionTimeConflict:
		r.TimeConflict = append(r.TimeConflict, rejected)
	case RejectionWrongType:
		r.WrongType = append(r.WrongType, rejected)
	case RejectionTooSmall:
		r.TooSmall = append(r.TooSmall, rejected)
	}
}

// Total общее количество отклоненных комнат
func (r *RejectedRooms) Total() int {
	return len(r.TimeConflict) + len(r.WrongType) + len(r.TooSmall)
}

// AllocationResult результат подбора комнаты
// Отсутствие кандидата не ошибка: Success=false и причины отказа по каждой комнате
type AllocationResult struct {
	Success        bool
	BestMatch      *Candidate
	Alternatives   []Candidate
	TotalAvailable int
	RejectedRooms  RejectedRooms
	Message        string
}
