package domain

// Default catalog values
const (
	DefaultRoomCapacity = 40
	DefaultRoomType     = RoomTypeLecture
)

// Scoring constants
const (
	DepartmentPriorityBonus = 5
	PreferredBuildingBonus  = 3
	MaxAlternatives         = 3
)

// Fit quality thresholds (доля незанятых мест)
const (
	PerfectFitMaxWaste    = 0.15
	GoodFitMaxWaste       = 0.30
	SlightlyLargeMaxWaste = 0.50
)

// Fit quality labels
const (
	LabelPerfectFit    = "Perfect Fit"
	LabelGoodFit       = "Good Fit"
	LabelSlightlyLarge = "Slightly Large"
	LabelOversized     = "Oversized"
)

// Business validation constants
const (
	MaxPurposeLength  = 500
	MaxRequiredPeople = 10000
)
