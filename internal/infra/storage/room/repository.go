package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/psqlbuilder"
)

// pgExclusionViolation код нарушения EXCLUDE ограничения occupancy_no_overlap
const pgExclusionViolation = "23P01"

var roomColumns = []string{
	"id",
	"name",
	"capacity",
	"room_type",
	"building",
	"floor",
	"department_priority",
}

var occupancyColumns = []string{
	"room_id",
	"day",
	"start_time",
	"end_time",
	"booking_id",
	"requester",
	"department",
}

// Repository репозиторий инвентаря комнат и их занятости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRooms возвращает все комнаты каталога вместе с периодами занятости
// Вместимость и тип возвращаются как есть и могут отсутствовать
func (r *Repository) ListRooms(ctx context.Context) ([]domain.CatalogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - build rooms query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - execute rooms query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.CatalogEntry, 0)
	index := make(map[string]int)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRooms - scan room: %w", ErrScanRow, err)
		}
		index[entry.ID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRooms - rows error: %w", ErrScanRow, err)
	}

	periods, err := r.queryOccupancy(ctx, executor, nil, "ListRooms")
	if err != nil {
		return nil, err
	}
	for roomID, list := range periods {
		if i, ok := index[roomID]; ok {
			entries[i].Occupancy = list
		}
	}

	return entries, nil
}

// GetByID получает запись комнаты без занятости
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetByID - rows error: %w", ErrScanRow, err)
		}
		return nil, ErrRoomNotFound
	}

	entry, err := scanEntry(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}
	return &entry, nil
}

// ListOccupancy возвращает периоды занятости комнаты на день, упорядоченные по началу
// В транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListOccupancy(ctx context.Context, roomID string, day domain.Day) ([]domain.OccupancyPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	periods, err := r.queryOccupancy(ctx, executor, squirrel.Eq{"room_id": roomID, "day": day}, "ListOccupancy")
	if err != nil {
		return nil, err
	}
	list := periods[roomID]
	if list == nil {
		list = make([]domain.OccupancyPeriod, 0)
	}
	return list, nil
}

// AppendOccupancy добавляет период занятости, только если он не пересекается с существующими
// Вставка условная (WHERE NOT EXISTS), пересечение также отсекается ограничением occupancy_no_overlap
func (r *Repository) AppendOccupancy(ctx context.Context, roomID string, period domain.OccupancyPeriod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	start, end := period.StartTime.Minutes(), period.EndTime.Minutes()

	overlapping := squirrel.Select("1").
		From("occupancy_periods").
		Where(squirrel.Eq{"room_id": roomID, "day": period.Day}).
		Where(squirrel.Lt{"start_minute": end}).
		Where(squirrel.Gt{"end_minute": start})

	overlapSQL, overlapArgs, err := overlapping.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendOccupancy - build overlap query: %w", ErrBuildQuery, err)
	}

	values := squirrel.Select().
		Column("?::text", roomID).
		Column("?::text", period.Day).
		Column("?::text", period.StartTime).
		Column("?::text", period.EndTime).
		Column("?::int", start).
		Column("?::int", end).
		Column("?::bigint", nullableID(period.BookingID)).
		Column("?::text", period.Requester).
		Column("?::text", period.Department).
		Where("NOT EXISTS ("+overlapSQL+")", overlapArgs...)

	query, args, err := psqlbuilder.Insert("occupancy_periods").
		Columns(
			"room_id",
			"day",
			"start_time",
			"end_time",
			"start_minute",
			"end_minute",
			"booking_id",
			"requester",
			"department",
		).
		Select(values).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendOccupancy - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return fmt.Errorf("%w: AppendOccupancy - room %s on %s %s-%s", ErrOccupancyConflict, roomID, period.Day, period.StartTime, period.EndTime)
		}
		return fmt.Errorf("%w: AppendOccupancy - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AppendOccupancy - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: AppendOccupancy - room %s on %s %s-%s", ErrOccupancyConflict, roomID, period.Day, period.StartTime, period.EndTime)
	}

	return nil
}

// queryOccupancy выбирает периоды занятости, сгруппированные по комнате
func (r *Repository) queryOccupancy(ctx context.Context, executor DBExecutor, where squirrel.Sqlizer, method string) (map[string][]domain.OccupancyPeriod, error) {
	selectBuilder := psqlbuilder.Select(occupancyColumns...).
		From("occupancy_periods").
		OrderBy("room_id ASC", "day ASC", "start_minute ASC")

	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build occupancy query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute occupancy query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	periods := make(map[string][]domain.OccupancyPeriod)
	for rows.Next() {
		var (
			roomID     string
			period     domain.OccupancyPeriod
			bookingID  sql.NullInt64
			requester  sql.NullString
			department sql.NullString
		)
		err := rows.Scan(
			&roomID,
			&period.Day,
			&period.StartTime,
			&period.EndTime,
			&bookingID,
			&requester,
			&department,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan occupancy: %w", ErrScanRow, method, err)
		}
		period.BookingID = bookingID.Int64
		period.Requester = requester.String
		period.Department = department.String
		periods[roomID] = append(periods[roomID], period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return periods, nil
}

func scanEntry(rows *sql.Rows) (domain.CatalogEntry, error) {
	var (
		entry    domain.CatalogEntry
		capacity sql.NullInt64
		roomType sql.NullString
		building sql.NullString
		floor    sql.NullInt64
		priority []string
	)

	err := rows.Scan(
		&entry.ID,
		&entry.Name,
		&capacity,
		&roomType,
		&building,
		&floor,
		pq.Array(&priority),
	)
	if err != nil {
		return entry, err
	}

	if capacity.Valid {
		c := int(capacity.Int64)
		entry.Capacity = &c
	}
	if roomType.Valid && roomType.String != "" {
		t := domain.RoomType(roomType.String)
		entry.Type = &t
	}
	entry.Building = building.String
	entry.Floor = int(floor.Int64)
	entry.DepartmentPriority = priority

	return entry, nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}
