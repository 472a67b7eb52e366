package get_room_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает день и шаг сетки
func validateRequest(req *Request, defaultSlot int) (domain.Day, int, error) {
	if req == nil {
		return "", 0, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.RoomID) == "" {
		return "", 0, fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	day, err := domain.ParseDay(req.Day)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot := req.SlotMinutes
	if slot == 0 {
		slot = defaultSlot
	}
	if slot < MinSlotMinutes || slot > MaxSlotMinutes {
		return "", 0, fmt.Errorf("%w: slot must be between %d and %d minutes", ErrInvalidInput, MinSlotMinutes, MaxSlotMinutes)
	}

	return day, slot, nil
}
