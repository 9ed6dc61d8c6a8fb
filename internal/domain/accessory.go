package domain

import "time"

// Accessory represents an add-on (helmet, lock, child seat) that can be
// attached to a booking. The price on the catalogue record may change
// over time; the price charged to a booking is captured at booking time
// in BookingAccessory.
type Accessory struct {
	ID    int64
	Name  string
	Price float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
