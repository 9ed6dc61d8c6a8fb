package get_quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cycleaway/booking-service/internal/domain"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
)

type fakeCycleRepo struct {
	cycles map[int64]*domain.Cycle
}

func (f *fakeCycleRepo) GetByID(_ context.Context, id int64) (*domain.Cycle, error) {
	c, ok := f.cycles[id]
	if !ok {
		return nil, cycleRepo.ErrCycleNotFound
	}
	return c, nil
}

type fakeAccessoryRepo struct {
	accessories map[int64]*domain.Accessory
}

func (f *fakeAccessoryRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Accessory, error) {
	var out []*domain.Accessory
	for _, id := range ids {
		if a, ok := f.accessories[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase() *UseCase {
	cycles := &fakeCycleRepo{cycles: map[int64]*domain.Cycle{
		1: {ID: 1, Name: "City Bike", PricePerDay: 12, Available: true},
	}}
	accessories := &fakeAccessoryRepo{accessories: map[int64]*domain.Accessory{
		1: {ID: 1, Name: "Helmet", Price: 5},
	}}
	return NewUseCase(cycles, accessories, nopLogger{})
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("quote with accessories", func(t *testing.T) {
		uc := newTestUseCase()

		resp, err := uc.Execute(context.Background(), &Request{
			CycleID:      1,
			StartTime:    date(2026, 9, 10),
			EndTime:      date(2026, 9, 14),
			AccessoryIDs: []int64{1},
		})
		require.NoError(t, err)

		assert.Equal(t, 4, resp.Days)
		assert.InDelta(t, 48, resp.CyclePrice, 1e-9)
		assert.InDelta(t, 53, resp.TotalPrice, 1e-9)
		require.Len(t, resp.Accessories, 1)
		assert.Equal(t, "Helmet", resp.Accessories[0].Name)
	})

	t.Run("partial day bills full day", func(t *testing.T) {
		uc := newTestUseCase()

		resp, err := uc.Execute(context.Background(), &Request{
			CycleID:   1,
			StartTime: date(2026, 9, 10),
			EndTime:   date(2026, 9, 10).Add(3 * time.Hour),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Days)
		assert.InDelta(t, 12, resp.TotalPrice, 1e-9)
	})

	t.Run("cycle not found", func(t *testing.T) {
		uc := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			CycleID:   42,
			StartTime: date(2026, 9, 10),
			EndTime:   date(2026, 9, 14),
		})
		assert.ErrorIs(t, err, ErrCycleNotFound)
	})

	t.Run("accessory not found", func(t *testing.T) {
		uc := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			CycleID:      1,
			StartTime:    date(2026, 9, 10),
			EndTime:      date(2026, 9, 14),
			AccessoryIDs: []int64{42},
		})
		assert.ErrorIs(t, err, ErrAccessoryNotFound)
	})

	t.Run("invalid range", func(t *testing.T) {
		uc := newTestUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			CycleID:   1,
			StartTime: date(2026, 9, 14),
			EndTime:   date(2026, 9, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}
