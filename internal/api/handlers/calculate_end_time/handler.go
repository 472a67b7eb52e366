package calculate_end_time

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/types"
)

const (
	msgMissingParams   = "требуются параметры start и duration"
	msgInvalidDuration = "некорректная длительность, ожидается число часов, например 2.5"
	msgInvalidTime     = "некорректное время начала или длительность"
)

type Logger interface {
	Warn(format string, v ...interface{})
}

// EndTimeResponse HTTP response model
type EndTimeResponse struct {
	Start         string  `json:"start"`
	DurationHours float64 `json:"durationHours"`
	End           string  `json:"end"`
	StartDisplay  string  `json:"startDisplay"`
	EndDisplay    string  `json:"endDisplay"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/time/end?start=09:00&duration=2.5
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	durationStr := r.URL.Query().Get("duration")
	if start == "" || durationStr == "" {
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		h.logger.Warn("GET /time/end - Invalid duration %q: %v", durationStr, err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	end, err := types.CalculateEndTime(start, duration)
	if err != nil {
		h.logger.Warn("GET /time/end - Failed to calculate end time: start=%q, duration=%v: %v", start, duration, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	normalizedStart, err := types.NewTimeStringFromString(start)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	startDisplay, _ := types.FormatTimeDisplay(normalizedStart.String())
	endDisplay, _ := types.FormatTimeDisplay(end)

	handlers.RespondJSON(w, http.StatusOK, EndTimeResponse{
		Start:         normalizedStart.String(),
		DurationHours: duration,
		End:           end,
		StartDisplay:  startDisplay,
		EndDisplay:    endDisplay,
	})
}
