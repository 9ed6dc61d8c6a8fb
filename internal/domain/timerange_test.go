package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTimeRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		rng, err := NewTimeRange(date(2026, 9, 1), date(2026, 9, 5))
		require.NoError(t, err)
		assert.Equal(t, date(2026, 9, 1), rng.Start)
		assert.Equal(t, date(2026, 9, 5), rng.End)
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := NewTimeRange(date(2026, 9, 1), date(2026, 9, 1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewTimeRange(date(2026, 9, 5), date(2026, 9, 1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := TimeRange{Start: date(2026, 9, 10), End: date(2026, 9, 15)}

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{
			name:  "identical ranges",
			other: TimeRange{Start: date(2026, 9, 10), End: date(2026, 9, 15)},
			want:  true,
		},
		{
			name:  "fully inside",
			other: TimeRange{Start: date(2026, 9, 11), End: date(2026, 9, 13)},
			want:  true,
		},
		{
			name:  "partial overlap at start",
			other: TimeRange{Start: date(2026, 9, 8), End: date(2026, 9, 11)},
			want:  true,
		},
		{
			name:  "partial overlap at end",
			other: TimeRange{Start: date(2026, 9, 14), End: date(2026, 9, 20)},
			want:  true,
		},
		{
			name:  "contains base",
			other: TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 30)},
			want:  true,
		},
		{
			// Полуинтервал: конец одной аренды совпадает с началом другой
			name:  "adjacent before",
			other: TimeRange{Start: date(2026, 9, 5), End: date(2026, 9, 10)},
			want:  false,
		},
		{
			name:  "adjacent after",
			other: TimeRange{Start: date(2026, 9, 15), End: date(2026, 9, 20)},
			want:  false,
		},
		{
			name:  "completely before",
			other: TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 5)},
			want:  false,
		},
		{
			name:  "completely after",
			other: TimeRange{Start: date(2026, 9, 20), End: date(2026, 9, 25)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeRange_DurationInWholeDays(t *testing.T) {
	tests := []struct {
		name string
		rng  TimeRange
		want int
	}{
		{
			name: "exactly one day",
			rng:  TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 2)},
			want: 1,
		},
		{
			name: "four days",
			rng:  TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 5)},
			want: 4,
		},
		{
			// Неполные сутки округляются вверх
			name: "one day and one hour",
			rng:  TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 2).Add(time.Hour)},
			want: 2,
		},
		{
			name: "two hours rounds up to one day",
			rng:  TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 1).Add(2 * time.Hour)},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rng.DurationInWholeDays())
		})
	}
}
