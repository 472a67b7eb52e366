package allocation

import (
	"sort"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Score оценка комнаты: чем меньше, тем лучше
// Бонусы за кафедру и здание уменьшают оценку, но сортировка все равно идет сначала по вместимости
func Score(req *domain.BookingRequest, room domain.Room) int {
	score := room.Capacity - req.RequiredCapacity
	if room.HasDepartmentPriority(req.Department) {
		score -= domain.DepartmentPriorityBonus
	}
	if room.IsInBuilding(req.PreferredBuilding) {
		score -= domain.PreferredBuildingBonus
	}
	return score
}

// Rank строит кандидатов и сортирует их по ключу (вместимость, оценка, ID)
// Меньшая достаточная комната всегда выигрывает, предпочтения только разбивают ничью
func Rank(req *domain.BookingRequest, rooms []domain.Room) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(rooms))
	for _, room := range rooms {
		waste := room.Capacity - req.RequiredCapacity
		ratio := WasteRatio(room.Capacity, req.RequiredCapacity)
		candidates = append(candidates, domain.Candidate{
			Room:       room,
			Score:      Score(req, room),
			Waste:      waste,
			WasteRatio: ratio,
			FitQuality: FitQualityFor(ratio),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Room.Capacity != b.Room.Capacity {
			return a.Room.Capacity < b.Room.Capacity
		}
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return a.Room.ID < b.Room.ID
	})

	return candidates
}
