package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, uid string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, uid)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if booking.Requester.UID != uid {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", uid, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetRequesterBookings получает бронирования автора запроса
// Пользователь может видеть только свои бронирования
func (s *Service) GetRequesterBookings(ctx context.Context, req *models.GetRequesterBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRequesterBookings: fetching bookings of user=%s for caller=%s", req.RequesterUID, req.CallerUID)

	if strings.TrimSpace(req.RequesterUID) == "" {
		return nil, fmt.Errorf("%w: requester uid is required", ErrInvalidInput)
	}
	if req.RequesterUID != req.CallerUID {
		s.logger.Warn("GetRequesterBookings: access denied for caller=%s to bookings of user=%s", req.CallerUID, req.RequesterUID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByRequester(ctx, req.RequesterUID)
	if err != nil {
		s.logger.Error("GetRequesterBookings: repository error for user=%s: %v", req.RequesterUID, err)
		return nil, fmt.Errorf("%w: GetRequesterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRequesterBookings: successfully fetched %d bookings for user=%s", len(bookings), req.RequesterUID)
	return models.FromDomainBookingList(bookings), nil
}
