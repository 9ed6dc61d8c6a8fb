package domain

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidRange is returned when a range's end is not strictly after its start.
var ErrInvalidRange = errors.New("domain: range end must be after start")

// TimeRange represents a half-open rental interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a validated rental interval.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back rentals (r.End == other.Start) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Duration returns the raw length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// DurationInWholeDays returns the number of billable days for the range.
// Any started day counts as a full day, and every rental is billed for
// at least one day even when it lasts less than 24 hours.
func (r TimeRange) DurationInWholeDays() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
