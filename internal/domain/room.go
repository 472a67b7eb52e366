package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

// RoomType тип помещения
type RoomType string

const (
	RoomTypeComputerLab RoomType = "COMPUTER_LAB"
	RoomTypeLecture     RoomType = "LECTURE"
	RoomTypeLaboratory  RoomType = "LABORATORY"
	RoomTypeSeminar     RoomType = "SEMINAR"

	// RoomTypeAny допустим только в запросе, у комнаты такого типа не бывает
	RoomTypeAny RoomType = "ANY"
)

// RoomTypes все типы, которые может иметь комната
var RoomTypes = []RoomType{
	RoomTypeComputerLab,
	RoomTypeLecture,
	RoomTypeLaboratory,
	RoomTypeSeminar,
}

// ParseRoomType разбирает тип комнаты без учета регистра
func ParseRoomType(s string) (RoomType, error) {
	normalized := RoomType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range RoomTypes {
		if t == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown room type %q", ErrInvalidRequest, s)
}

// ParseRequestedRoomType как ParseRoomType, но допускает ANY; пустая строка означает ANY
func ParseRequestedRoomType(s string) (RoomType, error) {
	if strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), string(RoomTypeAny)) {
		return RoomTypeAny, nil
	}
	return ParseRoomType(s)
}

// Accepts возвращает true, если комната типа roomType подходит под запрошенный тип
// Замена односторонняя: лекционный запрос принимает семинарские и компьютерные классы, но не наоборот
func (requested RoomType) Accepts(roomType RoomType) bool {
	if requested == RoomTypeAny || requested == roomType {
		return true
	}
	if requested == RoomTypeLecture {
		return roomType == RoomTypeSeminar || roomType == RoomTypeComputerLab
	}
	return false
}

// OccupancyPeriod интервал, на который комната закреплена за бронированием
type OccupancyPeriod struct {
	Day        Day
	StartTime  types.TimeString
	EndTime    types.TimeString
	BookingID  int64
	Requester  string
	Department string
}

// Overlaps проверяет пересечение периода с окном [start, end) того же дня
func (p OccupancyPeriod) Overlaps(day Day, start, end types.TimeString) bool {
	return p.Day == day && types.Overlaps(p.StartTime, p.EndTime, start, end)
}

// Room комната с полностью заполненными метаданными
type Room struct {
	ID                 string
	Name               string
	Capacity           int
	Type               RoomType
	Building           string
	Floor              int
	DepartmentPriority []string
	Occupancy          []OccupancyPeriod
}

// HasDepartmentPriority возвращает true, если кафедра входит в приоритетный список комнаты
func (r *Room) HasDepartmentPriority(department string) bool {
	department = strings.TrimSpace(department)
	if department == "" {
		return false
	}
	for _, d := range r.DepartmentPriority {
		if strings.EqualFold(strings.TrimSpace(d), department) {
			return true
		}
	}
	return false
}

// IsInBuilding возвращает true, если комната находится в указанном здании
func (r *Room) IsInBuilding(building string) bool {
	building = strings.TrimSpace(building)
	if building == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.Building), building)
}

// FindConflict возвращает первый период занятости, пересекающийся с окном, по порядку начала
func (r *Room) FindConflict(day Day, start, end types.TimeString) (OccupancyPeriod, bool) {
	var (
		found    OccupancyPeriod
		hasFound bool
	)
	for _, p := range r.Occupancy {
		if !p.Overlaps(day, start, end) {
			continue
		}
		if !hasFound || p.StartTime.IsBefore(found.StartTime) {
			found = p
			hasFound = true
		}
	}
	return found, hasFound
}

// ValidateOccupancy проверяет, что периоды занятости одного дня не пересекаются
func (r *Room) ValidateOccupancy() error {
	byDay := make(map[Day][]OccupancyPeriod)
	for _, p := range r.Occupancy {
		byDay[p.Day] = append(byDay[p.Day], p)
	}

	for day, periods := range byDay {
		sort.Slice(periods, func(i, j int) bool {
			return periods[i].StartTime.IsBefore(periods[j].StartTime)
		})
		for i := 1; i < len(periods); i++ {
			prev, cur := periods[i-1], periods[i]
			if types.Overlaps(prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime) {
				return fmt.Errorf("%w: room %s on %s: %s-%s overlaps %s-%s",
					ErrOverlappingOccupancy, r.ID, day,
					prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime)
			}
		}
	}
	return nil
}

// CatalogEntry запись инвентаря как она хранится во внешнем каталоге
// Вместимость и тип могут отсутствовать, их заполняет шаг обогащения (RoomDefaults.Enrich)
type CatalogEntry struct {
	ID                 string
	Name               string
	Capacity           *int
	Type               *RoomType
	Building           string
	Floor              int
	DepartmentPriority []string
	Occupancy          []OccupancyPeriod
}
