package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusComplete  BookingStatus = "complete"
	StatusCancelled BookingStatus = "cancelled"
)

// ErrIllegalTransition is returned when a status change does not follow
// the booking lifecycle graph. The booking is left unchanged.
var ErrIllegalTransition = errors.New("domain: illegal booking status transition")

// transitions is the whole lifecycle graph. Any (from, to) pair that is
// absent here is illegal; terminal states have no outgoing edges.
var transitions = map[BookingStatus]map[BookingStatus]struct{}{
	StatusConfirmed: {StatusActive: {}, StatusCancelled: {}},
	StatusActive:    {StatusComplete: {}},
}

// CanTransition reports whether the lifecycle allows moving from one
// status to another.
func CanTransition(from, to BookingStatus) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Booking represents a cycle rental reservation in the system
type Booking struct {
	ID         int64
	CycleID    int64
	UserID     uuid.UUID
	LocationID int64 // denormalized from the cycle at booking time, staff may reassign later
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus

	// Denormalized data for history: the rate and cycle name captured
	// at booking time so that later inventory edits cannot change what
	// the customer was charged.
	CycleName   string
	PricePerDay float64
	TotalPrice  float64

	Accessories []BookingAccessory

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingAccessory links a booking to an accessory, with the accessory
// price captured at booking time.
type BookingAccessory struct {
	BookingID      int64
	AccessoryID    int64
	Name           string
	PriceAtBooking float64
}

// Range returns the booking's rental interval.
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// TransitionTo applies a lifecycle transition, leaving the booking
// unchanged when the transition is illegal.
func (b *Booking) TransitionTo(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return ErrIllegalTransition
	}
	b.Status = to
	return nil
}

// IsOccupying returns true if the booking blocks its cycle for the range
func (b *Booking) IsOccupying() bool {
	for _, s := range OccupyingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusComplete || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// CanBeRescheduled returns true if the booking's dates may still be edited
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusConfirmed
}

// LocationBookingsFilter фильтр для получения бронирований точки проката
type LocationBookingsFilter struct {
	LocationID      int64          // Обязательный параметр
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые бронирования
}
