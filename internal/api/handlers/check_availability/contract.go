package check_availability

import (
	"context"

	"github.com/cycleaway/booking-service/internal/domain"
)

type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, cycleID int64, rng domain.TimeRange, excludeBookingID *int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
