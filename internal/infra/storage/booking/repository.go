package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/psqlbuilder"
)

// dayOrder сортирует дни недели по календарю, а не по алфавиту
const dayOrder = "array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day) ASC"

var bookingColumns = []string{
	"id",
	"room_id",
	"day",
	"start_time",
	"end_time",
	"required_capacity",
	"purpose",
	"requester_uid",
	"requester_name",
	"department",
	"status",
	"room_capacity",
	"room_type",
	"room_building",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычный запрос без транзакции.
//
// Бронирование комнаты всегда создается в одной транзакции с периодом занятости
// (см. room.Repository.AppendOccupancy), иначе запись может остаться без занятости.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"day",
			"start_time",
			"end_time",
			"required_capacity",
			"purpose",
			"requester_uid",
			"requester_name",
			"department",
			"status",
			"room_capacity",
			"room_type",
			"room_building",
		).
		Values(
			booking.RoomID,
			booking.Day,
			booking.StartTime,
			booking.EndTime,
			booking.RequiredCapacity,
			booking.Purpose,
			booking.Requester.UID,
			booking.Requester.Name,
			booking.Department,
			booking.Status,
			booking.RoomCapacity,
			booking.RoomType,
			booking.RoomBuilding,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByRequester получает бронирования автора запроса в порядке дня недели и времени начала
func (r *Repository) GetByRequester(ctx context.Context, uid string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"requester_uid": uid}).
		OrderBy(dayOrder, "start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime
		var purpose, requesterName, department, building sql.NullString

		err := rows.Scan(
			&booking.ID,
			&booking.RoomID,
			&booking.Day,
			&booking.StartTime,
			&booking.EndTime,
			&booking.RequiredCapacity,
			&purpose,
			&booking.Requester.UID,
			&requesterName,
			&department,
			&booking.Status,
			&booking.RoomCapacity,
			&booking.RoomType,
			&building,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		booking.Purpose = purpose.String
		booking.Requester.Name = requesterName.String
		booking.Department = department.String
		booking.RoomBuilding = building.String
		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
