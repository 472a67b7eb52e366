package list_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/catalog"
)

const (
	msgCatalogUnavailable = "каталог комнат временно недоступен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRooms(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrCatalogUnavailable) {
			h.logger.Error("GET /rooms - Catalog unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgCatalogUnavailable)
			return
		}
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms listed successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
