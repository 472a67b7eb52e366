package search_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	findRoom "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSearch      = "некорректные параметры подбора"
)

type Handler struct {
	useCase FindRoomUseCase
	logger  Logger
}

func NewHandler(useCase FindRoomUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/search
// Отсутствие подходящей комнаты не ошибка: 200 и success=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchRoomsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, findRoom.ErrInvalidInput):
			h.logger.Warn("POST /rooms/search - Invalid search: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSearch+": "+err.Error())

		default:
			h.logger.Error("POST /rooms/search - Failed to search rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/search - Search completed: success=%t, available=%d",
		result.Result.Success, result.Result.TotalAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
