package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name        string
		rng         TimeRange
		dailyRate   float64
		accessories []*Accessory
		want        float64
	}{
		{
			name:      "three days no accessories",
			rng:       TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 4)},
			dailyRate: 15,
			want:      45,
		},
		{
			name:      "three days with two accessories",
			rng:       TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 4)},
			dailyRate: 15,
			accessories: []*Accessory{
				{ID: 1, Name: "Helmet", Price: 5},
				{ID: 2, Name: "Lock", Price: 2.50},
			},
			want: 52.50,
		},
		{
			// Неполные сутки оплачиваются как полный день
			name:      "six hours bills one day",
			rng:       TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 1).Add(6 * time.Hour)},
			dailyRate: 20,
			want:      20,
		},
		{
			name:      "day and a half bills two days",
			rng:       TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 2).Add(12 * time.Hour)},
			dailyRate: 10,
			want:      20,
		},
		{
			// Аксессуары оплачиваются за аренду, а не за день
			name:      "accessory price is flat per rental",
			rng:       TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 8)},
			dailyRate: 10,
			accessories: []*Accessory{
				{ID: 1, Name: "Helmet", Price: 5},
			},
			want: 75,
		},
		{
			name:      "free cycle with paid accessory",
			rng:       TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 2)},
			dailyRate: 0,
			accessories: []*Accessory{
				{ID: 1, Name: "Helmet", Price: 5},
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.rng, tt.dailyRate, tt.accessories)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPrice_NegativeInputs(t *testing.T) {
	rng := TimeRange{Start: date(2026, 9, 1), End: date(2026, 9, 3)}

	t.Run("negative daily rate", func(t *testing.T) {
		_, err := Price(rng, -10, nil)
		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("negative accessory price", func(t *testing.T) {
		_, err := Price(rng, 10, []*Accessory{{ID: 1, Price: -5}})
		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}
