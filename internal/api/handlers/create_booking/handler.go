package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDayOrTime   = "некорректный день или время, ожидается день недели и HH:MM"
	msgInvalidBooking     = "некорректные параметры бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgConflictOnCommit   = "комната уже занята в выбранное время или не вмещает группу"
	msgRoomBusy           = "комната сейчас бронируется другим запросом, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дня и времени)
	useCaseReq, err := req.ToUseCaseRequest(requester, middleware.GetDepartment(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid booking: user_id=%s, error=%v", requester.UID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking+": "+err.Error())

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%s", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrConflictOnCommit):
			h.logger.Warn("POST /bookings - Conflict on commit: room_id=%s, user_id=%s", req.RoomID, requester.UID)
			handlers.RespondConflict(w, msgConflictOnCommit)

		case errors.Is(err, createBooking.ErrRoomBusy):
			h.logger.Warn("POST /bookings - Room busy: room_id=%s, user_id=%s", req.RoomID, requester.UID)
			handlers.RespondConflict(w, msgRoomBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room_id=%s, user_id=%s, error=%v",
				req.RoomID, requester.UID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, room_id=%s, user_id=%s",
		result.ID, result.RoomID, requester.UID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
