package domain

import "time"

// Location represents a rental point where cycles are picked up and returned
type Location struct {
	ID      int64
	Name    string
	Address string

	CreatedAt time.Time
	UpdatedAt time.Time
}
