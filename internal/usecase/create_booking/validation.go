package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.RoomID) == "" {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	if !req.Day.IsValid() {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidInput, req.Day)
	}

	// Проверяем, что время указано и корректно
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidInput, req.StartTime, req.EndTime)
	}

	if req.RequiredCapacity <= 0 {
		return fmt.Errorf("%w: requiredCapacity must be positive", ErrInvalidInput)
	}
	if req.RequiredCapacity > domain.MaxRequiredPeople {
		return fmt.Errorf("%w: requiredCapacity must not exceed %d", ErrInvalidInput, domain.MaxRequiredPeople)
	}

	if strings.TrimSpace(req.Requester.UID) == "" {
		return fmt.Errorf("%w: requester uid is required", ErrInvalidInput)
	}

	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose must not exceed %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	return nil
}
