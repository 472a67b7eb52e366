package domain

import (
	"fmt"
	"strings"
)

// RoomDefault значения по умолчанию для комнаты с неполными метаданными
type RoomDefault struct {
	Capacity int
	Type     RoomType
}

// RoomDefaults неизменяемая таблица значений по умолчанию, ключ - нормализованное имя комнаты
// Создается из конфигурации кампуса и передается в каталог явно
type RoomDefaults struct {
	byName   map[string]RoomDefault
	fallback RoomDefault
}

// NewRoomDefaults создает таблицу значений по умолчанию
// Ключи entries нормализуются, значения валидируются
func NewRoomDefaults(entries map[string]RoomDefault, fallback RoomDefault) (*RoomDefaults, error) {
	if err := validateDefault(fallback); err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}

	byName := make(map[string]RoomDefault, len(entries))
	for name, def := range entries {
		key := NormalizeRoomName(name)
		if key == "" {
			return nil, fmt.Errorf("%w: empty room name in defaults", ErrInvalidDefaults)
		}
		if err := validateDefault(def); err != nil {
			return nil, fmt.Errorf("room %q: %w", name, err)
		}
		byName[key] = def
	}

	return &RoomDefaults{byName: byName, fallback: fallback}, nil
}

// DefaultRoomDefaults таблица без записей, только с запасным значением (40 мест, лекционная)
func DefaultRoomDefaults() *RoomDefaults {
	return &RoomDefaults{
		byName:   map[string]RoomDefault{},
		fallback: RoomDefault{Capacity: DefaultRoomCapacity, Type: DefaultRoomType},
	}
}

// Lookup возвращает значения по умолчанию для имени комнаты
func (d *RoomDefaults) Lookup(name string) RoomDefault {
	if def, ok := d.byName[NormalizeRoomName(name)]; ok {
		return def
	}
	return d.fallback
}

// Enrich превращает запись каталога в комнату, заполняя только отсутствующие поля
func (d *RoomDefaults) Enrich(entry CatalogEntry) Room {
	def := d.Lookup(entry.Name)

	capacity := def.Capacity
	if entry.Capacity != nil && *entry.Capacity > 0 {
		capacity = *entry.Capacity
	}

	roomType := def.Type
	if entry.Type != nil && *entry.Type != "" {
		roomType = *entry.Type
	}

	priority := make([]string, len(entry.DepartmentPriority))
	copy(priority, entry.DepartmentPriority)

	occupancy := make([]OccupancyPeriod, len(entry.Occupancy))
	copy(occupancy, entry.Occupancy)

	return Room{
		ID:                 entry.ID,
		Name:               entry.Name,
		Capacity:           capacity,
		Type:               roomType,
		Building:           entry.Building,
		Floor:              entry.Floor,
		DepartmentPriority: priority,
		Occupancy:          occupancy,
	}
}

// NormalizeRoomName приводит имя к ключу таблицы: нижний регистр, без пробелов, '-', '_' и '.'
func NormalizeRoomName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '\t', '-', '_', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validateDefault(def RoomDefault) error {
	if def.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidDefaults)
	}
	for _, t := range RoomTypes {
		if t == def.Type {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown room type %q", ErrInvalidDefaults, def.Type)
}
