package domain

import (
	"fmt"
	"strings"
	"time"
)

// Day день недели, на который бронируется комната
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

var days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay разбирает день недели без учета регистра, допускает трехбуквенные сокращения
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return "", fmt.Errorf("%w: unknown day %q", ErrInvalidRequest, s)
	}
	for _, d := range days {
		if strings.EqualFold(string(d), s) || strings.EqualFold(string(d)[:3], s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown day %q", ErrInvalidRequest, s)
}

// DayFromWeekday переводит time.Weekday в Day
func DayFromWeekday(w time.Weekday) Day {
	return Day(w.String())
}

// IsValid возвращает true для канонического названия дня
func (d Day) IsValid() bool {
	for _, known := range days {
		if d == known {
			return true
		}
	}
	return false
}

func (d Day) String() string {
	return string(d)
}
