package allocate_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/api/middleware"
	allocateRoom "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/allocate_room"
	createBooking "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры распределения"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgConflict           = "не удалось занять комнату: выбранные комнаты заняты параллельными запросами"
	msgRoomNotFound       = "комната не найдена"
)

type Handler struct {
	useCase AllocateRoomUseCase
	logger  Logger
}

func NewHandler(useCase AllocateRoomUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/allocations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("POST /allocations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AllocateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /allocations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest(requester, middleware.GetDepartment(r.Context()))

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, allocateRoom.ErrInvalidInput),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /allocations - Invalid request: user_id=%s, error=%v", requester.UID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest+": "+err.Error())

		case errors.Is(err, createBooking.ErrConflictOnCommit),
			errors.Is(err, createBooking.ErrRoomBusy):
			h.logger.Warn("POST /allocations - Conflict on commit: user_id=%s, error=%v", requester.UID, err)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /allocations - Room disappeared: user_id=%s, error=%v", requester.UID, err)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("POST /allocations - Failed to allocate room: user_id=%s, error=%v", requester.UID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if !result.Success {
		h.logger.Info("POST /allocations - No suitable room: user_id=%s", requester.UID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /allocations - Room allocated: booking_id=%d, room_id=%s, user_id=%s",
		result.BookingID(), result.Booking.RoomID, requester.UID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
