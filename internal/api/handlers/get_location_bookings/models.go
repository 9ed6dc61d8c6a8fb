package get_location_bookings

import (
	"net/url"
	"strconv"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	"github.com/cycleaway/booking-service/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры фильтра:
// from, to - границы периода (RFC 3339 или YYYY-MM-DD)
// status - фильтр по статусу
// includeInactive - включать завершённые и отменённые бронирования
func parseQuery(locationID int64, query url.Values) (*models.GetLocationBookingsRequest, error) {
	req := &models.GetLocationBookingsRequest{
		LocationID: locationID,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := handlers.ParseTime(raw)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := handlers.ParseTime(raw)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
