package get_room_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	getRoomAvailability "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/get_room_availability"
)

const (
	msgInvalidSlot  = "некорректный шаг сетки, ожидается число минут"
	msgInvalidInput = "некорректные параметры запроса"
	msgRoomNotFound = "комната не найдена"
)

type Handler struct {
	useCase GetRoomAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability?day=mon&slot=30
// day и slot необязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	// Парсим query параметры
	query := r.URL.Query()
	// Без day показываем текущий день недели
	day := query.Get("day")
	if day == "" {
		day = domain.DayFromWeekday(time.Now().Weekday()).String()
	}

	var slotMinutes int
	if slotStr := query.Get("slot"); slotStr != "" {
		var err error
		slotMinutes, err = strconv.Atoi(slotStr)
		if err != nil {
			h.logger.Warn("GET /rooms/{roomId}/availability - Invalid slot: %q", slotStr)
			handlers.RespondBadRequest(w, msgInvalidSlot)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getRoomAvailability.Request{
		RoomID:      roomID,
		Day:         day,
		SlotMinutes: slotMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getRoomAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{roomId}/availability - Invalid input: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, getRoomAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{roomId}/availability - Room not found: room_id=%s", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{roomId}/availability - Failed to get availability: room_id=%s, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{roomId}/availability - Availability retrieved: room_id=%s, day=%s, free windows=%d",
		roomID, result.Day, len(result.FreeWindows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
