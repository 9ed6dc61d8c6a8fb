package reassign_location

import "context"

type BookingService interface {
	ReassignLocation(ctx context.Context, bookingID int64, locationID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
