package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cycleaway/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateWithAccessories(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CycleRepository интерфейс репозитория велосипедов
type CycleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cycle, error)
}

// AccessoryRepository интерфейс репозитория аксессуаров
type AccessoryRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Accessory, error)
}

// AvailabilityChecker интерфейс проверки доступности велосипеда
type AvailabilityChecker interface {
	RangeFree(ctx context.Context, cycleID int64, rng domain.TimeRange, excludeBookingID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// nilUUID используется для проверки, что идентификатор пользователя заполнен
var nilUUID = uuid.UUID{}
