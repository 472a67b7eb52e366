// Package allocation подбирает комнату под разовый запрос.
//
// Все функции чистые: работают над снимком каталога, не имеют побочных эффектов
// и безопасны для параллельного вызова.
package allocation

import (
	"fmt"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Options параметры подбора
type Options struct {
	MaxAlternatives int
}

// DefaultOptions параметры по умолчанию: до трех альтернатив
func DefaultOptions() Options {
	return Options{MaxAlternatives: domain.MaxAlternatives}
}

// FindBestFitRoom подбирает наименьшую подходящую свободную комнату
// Если кандидатов нет, возвращает Success=false с причинами отказа, а не ошибку
func FindBestFitRoom(req *domain.BookingRequest, rooms []domain.Room) domain.AllocationResult {
	return FindBestFitRoomWithOptions(req, rooms, DefaultOptions())
}

// FindBestFitRoomWithOptions как FindBestFitRoom, но с явными параметрами
func FindBestFitRoomWithOptions(req *domain.BookingRequest, rooms []domain.Room, opts Options) domain.AllocationResult {
	available, rejected := Filter(req, rooms)

	if len(available) == 0 {
		return domain.AllocationResult{
			Success:        false,
			TotalAvailable: 0,
			RejectedRooms:  rejected,
			Message:        noCandidateMessage(req, rejected),
		}
	}

	ranked := Rank(req, available)
	best := ranked[0]

	maxAlternatives := opts.MaxAlternatives
	if maxAlternatives < 0 {
		maxAlternatives = 0
	}
	rest := ranked[1:]
	if len(rest) > maxAlternatives {
		rest = rest[:maxAlternatives]
	}
	alternatives := make([]domain.Candidate, len(rest))
	copy(alternatives, rest)

	return domain.AllocationResult{
		Success:        true,
		BestMatch:      &best,
		Alternatives:   alternatives,
		TotalAvailable: len(ranked),
		RejectedRooms:  rejected,
		Message: fmt.Sprintf("%s: %s (%d seats for %d, %s)",
			best.Room.Name, best.FitQuality.Label, best.Room.Capacity, req.RequiredCapacity, req.Day),
	}
}

func noCandidateMessage(req *domain.BookingRequest, rejected domain.RejectedRooms) string {
	if rejected.Total() == 0 {
		return "no rooms in catalog"
	}
	return fmt.Sprintf("no room available on %s %s-%s for %d people: %d time conflict, %d wrong type, %d too small",
		req.Day, req.StartTime, req.EndTime, req.RequiredCapacity,
		len(rejected.TimeConflict), len(rejected.WrongType), len(rejected.TooSmall))
}
