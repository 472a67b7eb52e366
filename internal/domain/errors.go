package domain

import "errors"

var (
	// ErrInvalidRequest возвращается при некорректных параметрах запроса
	ErrInvalidRequest = errors.New("domain: invalid booking request")

	// ErrInvalidDefaults возвращается при некорректной таблице значений по умолчанию
	ErrInvalidDefaults = errors.New("domain: invalid room defaults")

	// ErrOverlappingOccupancy возвращается, когда периоды занятости комнаты пересекаются
	ErrOverlappingOccupancy = errors.New("domain: overlapping occupancy periods")
)
