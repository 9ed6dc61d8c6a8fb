package inventory

import (
	"context"

	"github.com/cycleaway/booking-service/internal/domain"
)

// CycleRepository интерфейс репозитория велосипедов
type CycleRepository interface {
	Create(ctx context.Context, cycle *domain.Cycle) (*domain.Cycle, error)
	GetByID(ctx context.Context, id int64) (*domain.Cycle, error)
	List(ctx context.Context, filter domain.CycleFilter) ([]*domain.Cycle, error)
	Update(ctx context.Context, cycle *domain.Cycle) error
	SetAvailable(ctx context.Context, id int64, available bool) error
}

// AccessoryRepository интерфейс репозитория аксессуаров
type AccessoryRepository interface {
	Create(ctx context.Context, accessory *domain.Accessory) (*domain.Accessory, error)
	GetByID(ctx context.Context, id int64) (*domain.Accessory, error)
	List(ctx context.Context) ([]*domain.Accessory, error)
	Update(ctx context.Context, accessory *domain.Accessory) error
}

// LocationRepository интерфейс репозитория точек проката
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
	Update(ctx context.Context, location *domain.Location) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
