package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cycleaway/booking-service/internal/domain"
	"github.com/cycleaway/booking-service/pkg/dbmetrics"
	"github.com/cycleaway/booking-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"cycle_id",
	"user_id",
	"location_id",
	"start_time",
	"end_time",
	"status",
	"cycle_name",
	"price_per_day",
	"total_price",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateWithAccessories создает бронирование вместе с прикреплёнными
// аксессуарами как одну единицу работы.
//
// Если в контексте передана активная транзакция, обе вставки выполняются
// в ней и атомарность гарантирует БД. Вне транзакции при сбое вставки
// аксессуаров выполняется компенсирующее удаление бронирования: частично
// созданное бронирование не должно быть видно проверкам доступности.
// Если компенсация тоже падает, возвращается ErrCompensationFailed —
// остаётся бронирование без аксессуаров, но не призрак с неполным составом.
//
// Нарушение exclusion constraint по пересечению дат транслируется в
// ErrDateConflict.
func (r *Repository) CreateWithAccessories(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"cycle_id",
			"user_id",
			"location_id",
			"start_time",
			"end_time",
			"status",
			"cycle_name",
			"price_per_day",
			"total_price",
		).
		Values(
			booking.CycleID,
			booking.UserID,
			booking.LocationID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.CycleName,
			booking.PricePerDay,
			booking.TotalPrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithAccessories - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrDateConflict
		}
		return nil, fmt.Errorf("%w: CreateWithAccessories - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if len(booking.Accessories) > 0 {
		if err := r.insertAccessories(ctx, executor, booking.ID, booking.Accessories); err != nil {
			if dbmetrics.IsInTransaction(ctx) {
				// Откат сделает транзакция целиком
				return nil, err
			}
			// Компенсирующее удаление частично созданного бронирования
			if delErr := r.deleteByID(ctx, executor, booking.ID); delErr != nil {
				return nil, fmt.Errorf("%w: booking id=%d: %v (attachment error: %v)",
					ErrCompensationFailed, booking.ID, delErr, err)
			}
			return nil, err
		}
		for i := range booking.Accessories {
			booking.Accessories[i].BookingID = booking.ID
		}
	}

	return booking, nil
}

func (r *Repository) insertAccessories(ctx context.Context, executor DBExecutor, bookingID int64, attachments []domain.BookingAccessory) error {
	insertBuilder := psqlbuilder.Insert("booking_accessories").
		Columns("booking_id", "accessory_id", "price_at_booking")

	for _, a := range attachments {
		insertBuilder = insertBuilder.Values(bookingID, a.AccessoryID, a.PriceAtBooking)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertAccessories - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertAccessories - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) deleteByID(ctx context.Context, executor DBExecutor, id int64) error {
	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteByID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteByID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с аксессуарами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	if err := r.loadAccessories(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings[0], nil
}

// GetOccupyingByCycle получает бронирования велосипеда, занимающие его
// для проверки пересечения дат: статус ∈ domain.OccupyingStatuses.
// Отменённые и завершённые бронирования исключены — они освобождают
// велосипед сразу после смены статуса.
//
// excludeBookingID исключает из выборки собственное бронирование при
// редактировании дат существующего бронирования.
//
// Внутри транзакции строки блокируются через FOR UPDATE — это
// оптимистичная часть защиты от гонки; окончательную гарантию даёт
// exclusion constraint на вставке.
func (r *Repository) GetOccupyingByCycle(ctx context.Context, cycleID int64, excludeBookingID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"cycle_id": cycleID}).
		Where(squirrel.Eq{"status": domain.OccupyingStatusStrings()}).
		OrderBy("start_time ASC")

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByCycle - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByCycle - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAccessories(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByLocationWithFilter получает бронирования точки проката с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
func (r *Repository) GetByLocationWithFilter(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"location_id": filter.LocationID})

	// Фильтрация по периоду: пересечение [From, To) с диапазоном бронирования
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - только occupying
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.OccupyingStatusStrings()})
	}

	selectBuilder = selectBuilder.OrderBy("start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLocationWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLocationWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAccessories(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования атомарно: строка меняется
// только если текущий статус равен ожидаемому (compare-and-swap).
// Если строка не изменилась, возвращается ErrBookingNotFound либо
// ErrStatusConflict — гонка двух операций персонала не теряет обновление.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.classifyMissedUpdate(ctx, executor, id)
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины.
// CAS по ожидаемому статусу, как в UpdateStatus.
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.classifyMissedUpdate(ctx, executor, id)
	}

	return nil
}

// UpdateDates изменяет даты бронирования. Разрешено только для статуса
// confirmed; пересечение с другим occupying-бронированием отбивается
// exclusion constraint и транслируется в ErrDateConflict.
func (r *Repository) UpdateDates(ctx context.Context, id int64, rng domain.TimeRange, totalPrice float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", rng.Start).
		Set("end_time", rng.End).
		Set("total_price", totalPrice).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDates - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isOverlapViolation(err) {
			return ErrDateConflict
		}
		return fmt.Errorf("%w: UpdateDates - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDates - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.classifyMissedUpdate(ctx, executor, id)
	}

	return nil
}

// UpdateLocation переназначает точку проката бронирования
func (r *Repository) UpdateLocation(ctx context.Context, id int64, locationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("location_id", locationID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// classifyMissedUpdate различает "бронирование не найдено" и
// "бронирование в другом статусе" после неуспешного CAS-обновления
func (r *Repository) classifyMissedUpdate(ctx context.Context, executor DBExecutor, id int64) error {
	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: classifyMissedUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: classifyMissedUpdate - scan row: %v", ErrScanRow, err)
	}

	return ErrStatusConflict
}

// loadAccessories догружает аксессуары для списка бронирований одним запросом
func (r *Repository) loadAccessories(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Accessories = make([]domain.BookingAccessory, 0)
	}

	query, args, err := psqlbuilder.Select(
		"ba.booking_id",
		"ba.accessory_id",
		"a.name",
		"ba.price_at_booking",
	).
		From("booking_accessories ba").
		Join("accessories a ON a.id = ba.accessory_id").
		Where(squirrel.Eq{"ba.booking_id": ids}).
		OrderBy("ba.booking_id ASC, ba.accessory_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadAccessories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAccessories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var attachment domain.BookingAccessory
		if err := rows.Scan(
			&attachment.BookingID,
			&attachment.AccessoryID,
			&attachment.Name,
			&attachment.PriceAtBooking,
		); err != nil {
			return fmt.Errorf("%w: loadAccessories - scan row: %v", ErrScanRow, err)
		}

		if b, ok := byID[attachment.BookingID]; ok {
			b.Accessories = append(b.Accessories, attachment)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAccessories - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.CycleID,
			&booking.UserID,
			&booking.LocationID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.CycleName,
			&booking.PricePerDay,
			&booking.TotalPrice,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isOverlapViolation распознает нарушение exclusion constraint
// bookings_no_occupying_overlap (23P01) и unique violation (23505)
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}
