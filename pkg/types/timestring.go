package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MinutesPerHour количество минут в часе
	MinutesPerHour = 60

	// MinutesPerDay граница суток, "24:00" допустимо только как конец интервала
	MinutesPerDay = 24 * MinutesPerHour
)

var (
	// ErrInvalidTimeFormat возвращается при некорректной строке времени
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrInvalidDuration возвращается при некорректной длительности
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrOutOfDay возвращается, когда время выходит за пределы суток
	ErrOutOfDay = errors.New("time is out of day bounds")
)

// TimeString время суток в формате HH:MM, хранится как смещение в минутах от полуночи
type TimeString struct {
	minutes int
	set     bool
}

// NewTimeStringFromString разбирает строку времени ("9", "09", "9:30", "09:30")
// Отсутствующие минуты считаются нулевыми
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := ClockToMinutes(s)
	if err != nil {
		return TimeString{}, err
	}
	return TimeString{minutes: minutes, set: true}, nil
}

// FromMinutes создает TimeString из смещения в минутах
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrOutOfDay, minutes)
	}
	return TimeString{minutes: minutes, set: true}, nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ClockToMinutes переводит строку времени в минуты от полуночи
func ClockToMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	hoursPart, minutesPart, hasMinutes := strings.Cut(s, ":")

	if len(hoursPart) == 0 || len(hoursPart) > 2 || !isDigits(hoursPart) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hours, _ := strconv.Atoi(hoursPart)

	minutes := 0
	if hasMinutes {
		if len(minutesPart) != 2 || !isDigits(minutesPart) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		minutes, _ = strconv.Atoi(minutesPart)
	}

	if minutes >= MinutesPerHour {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	total := hours*MinutesPerHour + minutes
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return total, nil
}

// MinutesToClock переводит минуты от полуночи в строку HH:MM
func MinutesToClock(minutes int) (string, error) {
	t, err := FromMinutes(minutes)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Minutes возвращает смещение от полуночи в минутах
func (t TimeString) Minutes() int {
	return t.minutes
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/MinutesPerHour, t.minutes%MinutesPerHour)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.set
}

// Validate проверяет, что время задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.set {
		return fmt.Errorf("%w: empty", ErrInvalidTimeFormat)
	}
	if t.minutes < 0 || t.minutes > MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrOutOfDay, t.minutes)
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return FromMinutes(t.minutes + minutes)
}

// AddHours возвращает время, сдвинутое на дробное количество часов (1.5, 2.5)
// Результат округляется до ближайшей минуты
func (t TimeString) AddHours(hours float64) (TimeString, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return TimeString{}, fmt.Errorf("%w: %v hours", ErrInvalidDuration, hours)
	}
	return t.AddMinutes(int(math.Round(hours * MinutesPerHour)))
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal возвращает true, если времена совпадают
func (t TimeString) Equal(other TimeString) bool {
	return t.set == other.set && t.minutes == other.minutes
}

// Scan реализует sql.Scanner (TEXT "HH:MM")
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*t = TimeString{}
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.set {
		return nil, nil
	}
	return t.String(), nil
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON разбирает время из строки
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	if s == "" {
		*t = TimeString{}
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
