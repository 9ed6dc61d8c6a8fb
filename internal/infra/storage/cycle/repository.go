package cycle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/cycleaway/booking-service/internal/domain"
	"github.com/cycleaway/booking-service/pkg/dbmetrics"
	"github.com/cycleaway/booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнения запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var cycleColumns = []string{
	"id",
	"name",
	"category",
	"price_per_day",
	"available",
	"location_id",
	"image_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с велосипедами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория велосипедов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый велосипед
func (r *Repository) Create(ctx context.Context, cycle *domain.Cycle) (*domain.Cycle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cycles").
		Columns("name", "category", "price_per_day", "available", "location_id", "image_url").
		Values(cycle.Name, cycle.Category, cycle.PricePerDay, cycle.Available, cycle.LocationID, cycle.ImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cycle.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cycle.CreatedAt = createdAt.Time
	cycle.UpdatedAt = updatedAt.Time

	return cycle, nil
}

// GetByID получает велосипед по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Cycle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cycleColumns...).
		From("cycles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var cycle domain.Cycle
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cycle.ID,
		&cycle.Name,
		&cycle.Category,
		&cycle.PricePerDay,
		&cycle.Available,
		&cycle.LocationID,
		&cycle.ImageURL,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCycleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cycle: %v", ErrScanRow, err)
	}

	cycle.CreatedAt = createdAt.Time
	cycle.UpdatedAt = updatedAt.Time

	return &cycle, nil
}

// List получает велосипеды с фильтрацией по точке проката, категории и
// флагу доступности
func (r *Repository) List(ctx context.Context, filter domain.CycleFilter) ([]*domain.Cycle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(cycleColumns...).
		From("cycles").
		OrderBy("id ASC")

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cycles := make([]*domain.Cycle, 0)
	for rows.Next() {
		var cycle domain.Cycle
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&cycle.ID,
			&cycle.Name,
			&cycle.Category,
			&cycle.PricePerDay,
			&cycle.Available,
			&cycle.LocationID,
			&cycle.ImageURL,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		cycle.CreatedAt = createdAt.Time
		cycle.UpdatedAt = updatedAt.Time
		cycles = append(cycles, &cycle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return cycles, nil
}

// Update обновляет данные велосипеда, включая флаг available
func (r *Repository) Update(ctx context.Context, cycle *domain.Cycle) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cycles").
		Set("name", cycle.Name).
		Set("category", cycle.Category).
		Set("price_per_day", cycle.PricePerDay).
		Set("available", cycle.Available).
		Set("location_id", cycle.LocationID).
		Set("image_url", cycle.ImageURL).
		Where(squirrel.Eq{"id": cycle.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCycleNotFound
	}

	return nil
}

// SetAvailable переключает флаг обслуживания велосипеда
func (r *Repository) SetAvailable(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cycles").
		Set("available", available).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailable - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailable - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCycleNotFound
	}

	return nil
}
