package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRate is returned when a daily rate or an accessory price is
// negative. Upstream entities already enforce non-negativity, this is a
// defensive check so a quote can never go negative.
var ErrInvalidRate = errors.New("domain: negative rate or accessory price")

// Price computes the rental cost for a range: whole billable days times
// the daily rate plus the price of every selected accessory. It is pure
// and is used both for pre-booking quotes and for the amount captured
// on the booking itself.
func Price(r TimeRange, dailyRate float64, accessories []*Accessory) (float64, error) {
	if dailyRate < 0 {
		return 0, fmt.Errorf("%w: daily rate %.2f", ErrInvalidRate, dailyRate)
	}

	total := float64(r.DurationInWholeDays()) * dailyRate
	for _, a := range accessories {
		if a.Price < 0 {
			return 0, fmt.Errorf("%w: accessory id=%d price %.2f", ErrInvalidRate, a.ID, a.Price)
		}
		total += a.Price
	}

	return total, nil
}
