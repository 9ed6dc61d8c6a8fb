package search_cycles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cycleaway/booking-service/internal/domain"
	locationRepo "github.com/cycleaway/booking-service/internal/infra/storage/location"
)

type fakeCycleRepo struct {
	cycles []*domain.Cycle
}

func (f *fakeCycleRepo) List(_ context.Context, filter domain.CycleFilter) ([]*domain.Cycle, error) {
	var out []*domain.Cycle
	for _, c := range f.cycles {
		if filter.LocationID != nil && c.LocationID != *filter.LocationID {
			continue
		}
		if filter.Category != nil && c.Category != *filter.Category {
			continue
		}
		if filter.OnlyAvailable && !c.Available {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeLocationRepo struct {
	locations map[int64]*domain.Location
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, locationRepo.ErrLocationNotFound
	}
	return l, nil
}

type fakeChecker struct {
	busyCycles map[int64]bool
}

func (f *fakeChecker) RangeFree(_ context.Context, cycleID int64, _ domain.TimeRange, _ *int64) (bool, error) {
	return !f.busyCycles[cycleID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(busy map[int64]bool) *UseCase {
	cycles := &fakeCycleRepo{cycles: []*domain.Cycle{
		{ID: 1, Name: "City Bike", Category: "city", PricePerDay: 10, Available: true, LocationID: 7},
		{ID: 2, Name: "Mountain Bike", Category: "mountain", PricePerDay: 20, Available: true, LocationID: 7},
		{ID: 3, Name: "Broken Bike", Category: "city", PricePerDay: 10, Available: false, LocationID: 7},
		{ID: 4, Name: "Other Location Bike", Category: "city", PricePerDay: 10, Available: true, LocationID: 8},
	}}
	locations := &fakeLocationRepo{locations: map[int64]*domain.Location{
		7: {ID: 7, Name: "Central"},
	}}
	return NewUseCase(cycles, locations, &fakeChecker{busyCycles: busy}, nopLogger{})
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("returns free in-service cycles with total price", func(t *testing.T) {
		uc := newTestUseCase(map[int64]bool{2: true})

		resp, err := uc.Execute(context.Background(), &Request{
			LocationID: 7,
			StartTime:  date(2026, 9, 10),
			EndTime:    date(2026, 9, 13),
		})
		require.NoError(t, err)

		// Занятый, выведенный из строя и чужой велосипеды отфильтрованы
		require.Len(t, resp.Cycles, 1)
		assert.Equal(t, int64(1), resp.Cycles[0].ID)
		assert.InDelta(t, 30, resp.Cycles[0].TotalPrice, 1e-9)
	})

	t.Run("category filter", func(t *testing.T) {
		uc := newTestUseCase(nil)

		category := "mountain"
		resp, err := uc.Execute(context.Background(), &Request{
			LocationID: 7,
			StartTime:  date(2026, 9, 10),
			EndTime:    date(2026, 9, 13),
			Category:   &category,
		})
		require.NoError(t, err)

		require.Len(t, resp.Cycles, 1)
		assert.Equal(t, int64(2), resp.Cycles[0].ID)
	})

	t.Run("location not found", func(t *testing.T) {
		uc := newTestUseCase(nil)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID: 42,
			StartTime:  date(2026, 9, 10),
			EndTime:    date(2026, 9, 13),
		})
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})

	t.Run("invalid range", func(t *testing.T) {
		uc := newTestUseCase(nil)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID: 7,
			StartTime:  date(2026, 9, 13),
			EndTime:    date(2026, 9, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}
