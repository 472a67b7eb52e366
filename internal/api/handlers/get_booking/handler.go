package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "ID бронирования должен быть положительным числом"
	msgBookingNotFound  = "бронирование комнаты не найдено"
	msgMissingRequester = "не передан автор запроса (X-User-ID)"
	msgNotOwner         = "бронирование оформлено другим автором запроса"
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

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видно только его автору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{bookingId} - Invalid booking ID: %q", raw)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{bookingId} - Missing requester: booking_id=%d", bookingID)
		handlers.RespondUnauthorized(w, msgMissingRequester)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, requester.UID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{bookingId} - Not found: booking_id=%d, requester=%s", bookingID, requester.UID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{bookingId} - Not the owner: booking_id=%d, requester=%s (%s)",
				bookingID, requester.UID, requester.DisplayName())
			handlers.RespondForbidden(w, msgNotOwner)

		default:
			h.logger.Error("GET /bookings/{bookingId} - Failed: booking_id=%d, requester=%s, error=%v", bookingID, requester.UID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{bookingId} - booking_id=%d, room=%s, %s %s-%s, requester=%s",
		booking.ID, booking.RoomID, booking.Day, booking.StartTime, booking.EndTime, requester.UID)
	handlers.RespondJSON(w, http.StatusOK, FromBooking(booking))
}
