package get_room_availability

import (
	"sort"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// generateSlots генерирует сетку слотов учебного дня с фиксированным шагом
// Последний слот, не помещающийся до конца дня, отбрасывается
func generateSlots(dayStart, dayEnd types.TimeString, slotMinutes int) ([]Slot, error) {
	slots := make([]Slot, 0)
	current := dayStart

	for current.IsBefore(dayEnd) {
		slotEnd, err := current.AddMinutes(slotMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(dayEnd) {
			break
		}

		slots = append(slots, Slot{StartTime: current, EndTime: slotEnd, Free: true})
		current = slotEnd
	}

	return slots, nil
}

// markOccupied помечает занятыми слоты, пересекающиеся хотя бы с одним периодом
// Касание границ пересечением не считается:
// - слот 11:30-12:00, период 11:20-11:40 → занят
// - слот 11:30-12:00, период 11:00-11:30 → свободен
func markOccupied(slots []Slot, periods []domain.OccupancyPeriod) {
	for i := range slots {
		for _, p := range periods {
			if types.Overlaps(slots[i].StartTime, slots[i].EndTime, p.StartTime, p.EndTime) {
				slots[i].Free = false
				break
			}
		}
	}
}

// freeWindows вычисляет максимальные свободные интервалы внутри [dayStart, dayEnd)
// Периоды за пределами учебного дня обрезаются
func freeWindows(dayStart, dayEnd types.TimeString, periods []domain.OccupancyPeriod) []Window {
	sorted := make([]domain.OccupancyPeriod, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.IsBefore(sorted[j].StartTime)
	})

	windows := make([]Window, 0)
	cursor := dayStart

	for _, p := range sorted {
		if !p.EndTime.IsAfter(cursor) {
			continue
		}
		if !p.StartTime.IsBefore(dayEnd) {
			break
		}
		if p.StartTime.IsAfter(cursor) {
			windows = append(windows, Window{StartTime: cursor, EndTime: p.StartTime})
		}
		cursor = p.EndTime
	}

	if cursor.IsBefore(dayEnd) {
		windows = append(windows, Window{StartTime: cursor, EndTime: dayEnd})
	}

	return windows
}
