package reschedule_booking

import (
	"github.com/cycleaway/booking-service/internal/api/handlers"
	"github.com/cycleaway/booking-service/internal/service/bookings/models"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	StartTime string `json:"startTime"` // RFC 3339 либо "2026-09-05"
	EndTime   string `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleBookingRequest) ToServiceRequest() (*models.RescheduleBookingRequest, error) {
	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := handlers.ParseTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleBookingRequest{
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
