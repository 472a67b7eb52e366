package find_room

import "github.com/m04kA/SMC-RoomAllocationService/internal/domain"

// Request модель запроса на подбор комнаты
// EndTime имеет приоритет над DurationHours
type Request struct {
	Day               string  // "Monday" или "mon"
	StartTime         string  // "9", "09:00"
	EndTime           string  // опционально
	DurationHours     float64 // используется, если EndTime пуст
	RequiredCapacity  int     // сколько мест нужно
	RoomType          string  // пусто или ANY - любой тип
	Department        string  // опционально, дает бонус приоритетным комнатам
	PreferredBuilding string  // опционально
}

// Response модель ответа с результатом подбора
type Response struct {
	Request domain.BookingRequest
	Result  domain.AllocationResult
}

func (r *Request) toParams() domain.BookingRequestParams {
	return domain.BookingRequestParams{
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
