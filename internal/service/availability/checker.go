package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/cycleaway/booking-service/internal/domain"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
)

// Checker проверяет доступность велосипеда на диапазон дат.
//
// Какие статусы занимают велосипед, определяет ровно одно место —
// domain.OccupyingStatuses (через GetOccupyingByCycle). Все вызывающие
// стороны (создание бронирования, перенос дат персоналом, поиск
// свободных велосипедов) обязаны ходить через этот сервис, а не
// фильтровать бронирования самостоятельно.
type Checker struct {
	bookingRepo BookingRepository
	cycleRepo   CycleRepository
	logger      Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(bookingRepo BookingRepository, cycleRepo CycleRepository, logger Logger) *Checker {
	return &Checker{
		bookingRepo: bookingRepo,
		cycleRepo:   cycleRepo,
		logger:      logger,
	}
}

// IsAvailable проверяет, можно ли забронировать велосипед на диапазон.
// Возвращает ErrCycleNotFound / ErrCycleUnavailable для условий, не
// связанных с датами; false без ошибки означает конфликт дат.
//
// excludeBookingID исключает собственное бронирование из набора
// конфликтов при переносе дат существующего бронирования.
//
// Повторный вызов без записей между вызовами возвращает тот же результат.
func (c *Checker) IsAvailable(ctx context.Context, cycleID int64, rng domain.TimeRange, excludeBookingID *int64) (bool, error) {
	cycle, err := c.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, cycleRepo.ErrCycleNotFound) {
			c.logger.Warn("IsAvailable: cycle id=%d not found", cycleID)
			return false, ErrCycleNotFound
		}
		c.logger.Error("IsAvailable: failed to get cycle id=%d: %v", cycleID, err)
		return false, fmt.Errorf("%w: IsAvailable - failed to get cycle: %v", ErrInternal, err)
	}

	// Выведенный из строя велосипед недоступен независимо от дат
	if !cycle.IsBookable() {
		c.logger.Info("IsAvailable: cycle id=%d is out of service", cycleID)
		return false, ErrCycleUnavailable
	}

	return c.RangeFree(ctx, cycleID, rng, excludeBookingID)
}

// RangeFree проверяет только пересечение дат, без проверки флага
// обслуживания. Используется, когда велосипед уже загружен и проверен
// (поиск по списку available-велосипедов).
func (c *Checker) RangeFree(ctx context.Context, cycleID int64, rng domain.TimeRange, excludeBookingID *int64) (bool, error) {
	occupying, err := c.bookingRepo.GetOccupyingByCycle(ctx, cycleID, excludeBookingID)
	if err != nil {
		c.logger.Error("RangeFree: failed to get occupying bookings for cycle id=%d: %v", cycleID, err)
		return false, fmt.Errorf("%w: RangeFree - failed to get occupying bookings: %v", ErrInternal, err)
	}

	for _, b := range occupying {
		if b.Range().Overlaps(rng) {
			c.logger.Info("RangeFree: cycle id=%d has conflicting booking id=%d", cycleID, b.ID)
			return false, nil
		}
	}

	return true, nil
}
