package accessory

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

var accessoryColumns = []string{
	"id",
	"name",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с аксессуарами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аксессуаров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый аксессуар
func (r *Repository) Create(ctx context.Context, accessory *domain.Accessory) (*domain.Accessory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("accessories").
		Columns("name", "price").
		Values(accessory.Name, accessory.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&accessory.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	accessory.CreatedAt = createdAt.Time
	accessory.UpdatedAt = updatedAt.Time

	return accessory, nil
}

// GetByID получает аксессуар по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Accessory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(accessoryColumns...).
		From("accessories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var accessory domain.Accessory
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&accessory.ID,
		&accessory.Name,
		&accessory.Price,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAccessoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan accessory: %v", ErrScanRow, err)
	}

	accessory.CreatedAt = createdAt.Time
	accessory.UpdatedAt = updatedAt.Time

	return &accessory, nil
}

// GetByIDs получает аксессуары по списку ID. Количество записей в
// результате может быть меньше количества запрошенных ID — вызывающий
// код сам решает, является ли это ошибкой.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Accessory, error) {
	if len(ids) == 0 {
		return []*domain.Accessory{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(accessoryColumns...).
		From("accessories").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAccessories(rows)
}

// List получает все аксессуары
func (r *Repository) List(ctx context.Context) ([]*domain.Accessory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(accessoryColumns...).
		From("accessories").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAccessories(rows)
}

// Update обновляет аксессуар. Цена на каталожной записи может меняться,
// на уже созданные бронирования это не влияет (цена зафиксирована в
// booking_accessories).
func (r *Repository) Update(ctx context.Context, accessory *domain.Accessory) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("accessories").
		Set("name", accessory.Name).
		Set("price", accessory.Price).
		Where(squirrel.Eq{"id": accessory.ID}).
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
		return ErrAccessoryNotFound
	}

	return nil
}

// scanAccessories сканирует результаты запроса в слайс аксессуаров
func (r *Repository) scanAccessories(rows *sql.Rows) ([]*domain.Accessory, error) {
	accessories := make([]*domain.Accessory, 0)

	for rows.Next() {
		var accessory domain.Accessory
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&accessory.ID,
			&accessory.Name,
			&accessory.Price,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAccessories - scan row: %v", ErrScanRow, err)
		}

		accessory.CreatedAt = createdAt.Time
		accessory.UpdatedAt = updatedAt.Time
		accessories = append(accessories, &accessory)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAccessories - rows error: %v", ErrScanRow, err)
	}

	return accessories, nil
}
