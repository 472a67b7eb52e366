package types

import "fmt"

// IntervalsOverlap проверяет пересечение полуоткрытых интервалов [s1, e1) и [s2, e2)
// Касание границ (e1 == s2) пересечением не считается
func IntervalsOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// Overlaps проверяет пересечение двух интервалов, заданных TimeString
func Overlaps(start, end, otherStart, otherEnd TimeString) bool {
	return IntervalsOverlap(start.Minutes(), end.Minutes(), otherStart.Minutes(), otherEnd.Minutes())
}

// CalculateEndTime вычисляет время окончания по времени начала и длительности в часах
// CalculateEndTime("09:00", 2.5) == "11:30"
func CalculateEndTime(start string, durationHours float64) (string, error) {
	startTime, err := NewTimeStringFromString(start)
	if err != nil {
		return "", err
	}
	if startTime.Minutes() >= MinutesPerDay {
		return "", fmt.Errorf("%w: start %s", ErrOutOfDay, start)
	}

	end, err := startTime.AddHours(durationHours)
	if err != nil {
		return "", err
	}
	return end.String(), nil
}

// FormatTimeDisplay форматирует время для отображения в 12-часовом формате ("1:00 PM")
func FormatTimeDisplay(s string) (string, error) {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		return "", err
	}

	hours := (t.Minutes() / MinutesPerHour) % 24
	minutes := t.Minutes() % MinutesPerHour

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}

	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHours, minutes, suffix), nil
}
