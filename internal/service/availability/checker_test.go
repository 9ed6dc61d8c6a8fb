package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cycleaway/booking-service/internal/domain"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookingRepo) GetOccupyingByCycle(_ context.Context, cycleID int64, excludeBookingID *int64) ([]*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.CycleID != cycleID {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if b.IsOccupying() {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCycleRepo struct {
	cycles map[int64]*domain.Cycle
	err    error
}

func (f *fakeCycleRepo) GetByID(_ context.Context, id int64) (*domain.Cycle, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cycles[id]
	if !ok {
		return nil, cycleRepo.ErrCycleNotFound
	}
	return c, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) domain.TimeRange {
	t.Helper()
	rng, err := domain.NewTimeRange(start, end)
	require.NoError(t, err)
	return rng
}

func newChecker(bookings *fakeBookingRepo, cycles *fakeCycleRepo) *Checker {
	return NewChecker(bookings, cycles, nopLogger{})
}

func TestChecker_IsAvailable(t *testing.T) {
	cycles := &fakeCycleRepo{cycles: map[int64]*domain.Cycle{
		1: {ID: 1, Name: "City Bike", Available: true},
		2: {ID: 2, Name: "Broken Bike", Available: false},
	}}

	t.Run("free cycle is available", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{}, cycles)

		ok, err := checker.IsAvailable(context.Background(), 1, mustRange(t, date(2026, 9, 1), date(2026, 9, 5)), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overlapping confirmed booking blocks", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{bookings: []*domain.Booking{
			{ID: 10, CycleID: 1, Status: domain.StatusConfirmed, StartTime: date(2026, 9, 3), EndTime: date(2026, 9, 7)},
		}}, cycles)

		ok, err := checker.IsAvailable(context.Background(), 1, mustRange(t, date(2026, 9, 1), date(2026, 9, 5)), nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("back to back rentals do not conflict", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{bookings: []*domain.Booking{
			{ID: 10, CycleID: 1, Status: domain.StatusConfirmed, StartTime: date(2026, 9, 1), EndTime: date(2026, 9, 5)},
		}}, cycles)

		// Новая аренда начинается ровно в момент окончания существующей
		ok, err := checker.IsAvailable(context.Background(), 1, mustRange(t, date(2026, 9, 5), date(2026, 9, 8)), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("completed and cancelled bookings do not block", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{bookings: []*domain.Booking{
			{ID: 10, CycleID: 1, Status: domain.StatusComplete, StartTime: date(2026, 9, 1), EndTime: date(2026, 9, 10)},
			{ID: 11, CycleID: 1, Status: domain.StatusCancelled, StartTime: date(2026, 9, 1), EndTime: date(2026, 9, 10)},
		}}, cycles)

		ok, err := checker.IsAvailable(context.Background(), 1, mustRange(t, date(2026, 9, 2), date(2026, 9, 4)), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("active booking blocks", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{bookings: []*domain.Booking{
			{ID: 10, CycleID: 1, Status: domain.StatusActive, StartTime: date(2026, 9, 1), EndTime: date(2026, 9, 10)},
		}}, cycles)

		ok, err := checker.IsAvailable(context.Background(), 1, mustRange(t, date(2026, 9, 2), date(2026, 9, 4)), nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other cycle's bookings are ignored", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{bookings: []*domain.Booking{
			{ID: 10, CycleID: 99, Status: domain.StatusConfirmed, StartTime: date(2026, 9, 1), EndTime: date(2026, 9, 10)},
		}}, cycles)

		ok, err := checker.IsAvailable(context.Background(), 1, mustRange(t, date(2026, 9, 2), date(2026, 9, 4)), nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("out of service cycle", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{}, cycles)

		_, err := checker.IsAvailable(context.Background(), 2, mustRange(t, date(2026, 9, 1), date(2026, 9, 5)), nil)
		assert.ErrorIs(t, err, ErrCycleUnavailable)
	})

	t.Run("unknown cycle", func(t *testing.T) {
		checker := newChecker(&fakeBookingRepo{}, cycles)

		_, err := checker.IsAvailable(context.Background(), 42, mustRange(t, date(2026, 9, 1), date(2026, 9, 5)), nil)
		assert.ErrorIs(t, err, ErrCycleNotFound)
	})

	t.Run("repeated check returns same result", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{
			{ID: 10, CycleID: 1, Status: domain.StatusConfirmed, StartTime: date(2026, 9, 3), EndTime: date(2026, 9, 7)},
		}}
		checker := newChecker(repo, cycles)
		rng := mustRange(t, date(2026, 9, 1), date(2026, 9, 5))

		first, err := checker.IsAvailable(context.Background(), 1, rng, nil)
		require.NoError(t, err)
		second, err := checker.IsAvailable(context.Background(), 1, rng, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 2, repo.calls)
	})
}

func TestChecker_RangeFree_ExcludesOwnBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 10, CycleID: 1, Status: domain.StatusConfirmed, StartTime: date(2026, 9, 1), EndTime: date(2026, 9, 5)},
	}}
	checker := newChecker(repo, &fakeCycleRepo{})

	// Перенос дат собственного бронирования: пересечение с самим собой
	// не является конфликтом
	own := int64(10)
	free, err := checker.RangeFree(context.Background(), 1, mustRange(t, date(2026, 9, 2), date(2026, 9, 6)), &own)
	require.NoError(t, err)
	assert.True(t, free)

	// А чужое бронирование с теми же датами - является
	other := int64(99)
	free, err = checker.RangeFree(context.Background(), 1, mustRange(t, date(2026, 9, 2), date(2026, 9, 6)), &other)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestChecker_RangeFree_RepoError(t *testing.T) {
	checker := newChecker(&fakeBookingRepo{err: errors.New("connection refused")}, &fakeCycleRepo{})

	_, err := checker.RangeFree(context.Background(), 1, mustRange(t, date(2026, 9, 1), date(2026, 9, 5)), nil)
	assert.ErrorIs(t, err, ErrInternal)
}
