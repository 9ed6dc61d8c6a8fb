package search_cycles

import (
	"context"

	"github.com/cycleaway/booking-service/internal/domain"
)

// CycleRepository интерфейс репозитория велосипедов
type CycleRepository interface {
	List(ctx context.Context, filter domain.CycleFilter) ([]*domain.Cycle, error)
}

// LocationRepository интерфейс репозитория точек проката
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// AvailabilityChecker интерфейс проверки доступности велосипеда
type AvailabilityChecker interface {
	RangeFree(ctx context.Context, cycleID int64, rng domain.TimeRange, excludeBookingID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
