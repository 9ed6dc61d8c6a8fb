package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	// Полная таблица переходов: всё, чего нет в списке allowed, запрещено
	allowed := map[BookingStatus][]BookingStatus{
		StatusConfirmed: {StatusActive, StatusCancelled},
		StatusActive:    {StatusComplete},
		StatusComplete:  {},
		StatusCancelled: {},
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestBooking_TransitionTo(t *testing.T) {
	t.Run("confirmed to active", func(t *testing.T) {
		b := &Booking{Status: StatusConfirmed}
		require.NoError(t, b.TransitionTo(StatusActive))
		assert.Equal(t, StatusActive, b.Status)
	})

	t.Run("active to complete", func(t *testing.T) {
		b := &Booking{Status: StatusActive}
		require.NoError(t, b.TransitionTo(StatusComplete))
		assert.Equal(t, StatusComplete, b.Status)
	})

	t.Run("illegal transition leaves status unchanged", func(t *testing.T) {
		b := &Booking{Status: StatusComplete}
		err := b.TransitionTo(StatusActive)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, StatusComplete, b.Status)
	})

	t.Run("active cannot be cancelled", func(t *testing.T) {
		b := &Booking{Status: StatusActive}
		err := b.TransitionTo(StatusCancelled)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, StatusActive, b.Status)
	})
}

func TestBooking_IsOccupying(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusConfirmed, true},
		{StatusActive, true},
		// Завершённое бронирование освобождает велосипед
		{StatusComplete, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.IsOccupying())
		})
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusActive}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusComplete}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestBooking_CanBeRescheduled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeRescheduled())
	assert.False(t, (&Booking{Status: StatusActive}).CanBeRescheduled())
	assert.False(t, (&Booking{Status: StatusComplete}).CanBeRescheduled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeRescheduled())
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, ok := ParseBookingStatus(string(s))
		require.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseBookingStatus("pending")
	assert.False(t, ok)

	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}

func TestOccupyingStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"confirmed", "active"}, OccupyingStatusStrings())
}
