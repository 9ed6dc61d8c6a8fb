package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cycleaway/booking-service/internal/domain"
	bookingRepo "github.com/cycleaway/booking-service/internal/infra/storage/booking"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
	nextID  int64
}

func (f *fakeBookingRepo) CreateWithAccessories(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := *booking
	cp.ID = f.nextID
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	f.created = &cp
	return &cp, nil
}

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

type fakeChecker struct {
	free bool
	err  error
}

func (f *fakeChecker) RangeFree(context.Context, int64, domain.TimeRange, *int64) (bool, error) {
	return f.free, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testUserID = uuid.MustParse("9f3a2c1e-5b68-4d7f-9e10-aa12bb34cc56")

func newTestUseCase(bookings *fakeBookingRepo, cycles *fakeCycleRepo, accessories *fakeAccessoryRepo, checker *fakeChecker) *UseCase {
	uc := NewUseCase(bookings, cycles, accessories, checker, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: date(2026, 9, 1)}
	return uc
}

func defaultCycles() *fakeCycleRepo {
	return &fakeCycleRepo{cycles: map[int64]*domain.Cycle{
		1: {ID: 1, Name: "City Bike", Category: "city", PricePerDay: 15, Available: true, LocationID: 7},
		2: {ID: 2, Name: "Broken Bike", Category: "city", PricePerDay: 15, Available: false, LocationID: 7},
	}}
}

func defaultAccessories() *fakeAccessoryRepo {
	return &fakeAccessoryRepo{accessories: map[int64]*domain.Accessory{
		1: {ID: 1, Name: "Helmet", Price: 5},
		2: {ID: 2, Name: "Lock", Price: 2.50},
	}}
}

func validRequest() *Request {
	return &Request{
		UserID:    testUserID,
		CycleID:   1,
		StartTime: date(2026, 9, 10),
		EndTime:   date(2026, 9, 13),
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("creates confirmed booking with captured prices", func(t *testing.T) {
		repo := &fakeBookingRepo{nextID: 100}
		uc := newTestUseCase(repo, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.AccessoryIDs = []int64{1, 2}

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, int64(100), resp.ID)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, int64(7), resp.LocationID)
		assert.Equal(t, "City Bike", resp.CycleName)
		assert.InDelta(t, 15, resp.PricePerDay, 1e-9)
		// 3 дня * 15 + 5 + 2.50
		assert.InDelta(t, 52.50, resp.TotalPrice, 1e-9)
		require.Len(t, resp.Accessories, 2)
		assert.InDelta(t, 5, resp.Accessories[0].PriceAtBooking, 1e-9)
	})

	t.Run("date conflict from availability check", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{nextID: 100}, defaultCycles(), defaultAccessories(), &fakeChecker{free: false})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDateConflict)
	})

	t.Run("date conflict from exclusion constraint", func(t *testing.T) {
		// Гонка: предварительный чек прошёл, а вставка упёрлась в constraint
		repo := &fakeBookingRepo{err: bookingRepo.ErrDateConflict}
		uc := newTestUseCase(repo, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrDateConflict)
	})

	t.Run("cycle not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.CycleID = 42

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCycleNotFound)
	})

	t.Run("cycle out of service", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.CycleID = 2

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCycleUnavailable)
	})

	t.Run("accessory not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.AccessoryIDs = []int64{1, 42}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessoryNotFound)
	})

	t.Run("invalid range", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.StartTime = date(2026, 9, 13)
		req.EndTime = date(2026, 9, 10)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("start date in the past", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.StartTime = date(2026, 8, 20)
		req.EndTime = date(2026, 8, 25)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("start today is allowed", func(t *testing.T) {
		repo := &fakeBookingRepo{nextID: 101}
		uc := newTestUseCase(repo, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.StartTime = date(2026, 9, 1)
		req.EndTime = date(2026, 9, 3)

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.UserID = uuid.UUID{}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate accessories rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, defaultCycles(), defaultAccessories(), &fakeChecker{free: true})

		req := validRequest()
		req.AccessoryIDs = []int64{1, 1}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
