package get_user_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	userID := strings.TrimSpace(mux.Vars(r)["userId"])
	if userID == "" {
		h.logger.Warn("GET /users/{userId}/bookings - Empty user ID")
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetRequesterBookingsRequest{
		CallerUID:    callerID,
		RequesterUID: userID,
	}

	// Получаем бронирования пользователя
	result, err := h.service.GetRequesterBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{userId}/bookings - Access denied: caller=%s, user_id=%s", callerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%s, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
