package domain

import "time"

// Cycle represents a rentable bicycle in the inventory
type Cycle struct {
	ID          int64
	Name        string
	Category    string
	PricePerDay float64
	Available   bool // maintenance/inventory toggle, independent of booking occupancy
	LocationID  int64
	ImageURL    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the cycle is in service. A cycle taken out
// of service is unbookable regardless of date range.
func (c *Cycle) IsBookable() bool {
	return c.Available
}

// CycleFilter фильтр для получения велосипедов
type CycleFilter struct {
	LocationID    *int64  // Фильтр по точке проката (опционально)
	Category      *string // Фильтр по категории (опционально)
	OnlyAvailable bool    // Только велосипеды в строю (available = true)
}
