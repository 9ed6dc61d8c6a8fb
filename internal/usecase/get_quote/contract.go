package get_quote

import (
	"context"

	"github.com/cycleaway/booking-service/internal/domain"
)

// CycleRepository интерфейс репозитория велосипедов
type CycleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Cycle, error)
}

// AccessoryRepository интерфейс репозитория аксессуаров
type AccessoryRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Accessory, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
