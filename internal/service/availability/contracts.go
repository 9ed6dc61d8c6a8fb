package availability

import (
	"context"

	"github.com/cycleaway/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOccupyingByCycle(ctx context.Context, cycleID int64, excludeBookingID *int64) ([]*domain.Booking, error)
}

// CycleRepository интерфейс репозитория велосипедов
type CycleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cycle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
