package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cycleaway/booking-service/internal/domain"
	bookingRepo "github.com/cycleaway/booking-service/internal/infra/storage/booking"
	locationRepo "github.com/cycleaway/booking-service/internal/infra/storage/location"
	"github.com/cycleaway/booking-service/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	updateStatusErr error
	cancelErr       error
	updateDatesErr  error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByLocationWithFilter(_ context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.LocationID == filter.LocationID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, from domain.BookingStatus, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCancelled
	if reason != "" {
		b.CancellationReason = &reason
	}
	now := time.Now()
	b.CancelledAt = &now
	return nil
}

func (f *fakeBookingRepo) UpdateDates(_ context.Context, id int64, rng domain.TimeRange, totalPrice float64) error {
	if f.updateDatesErr != nil {
		return f.updateDatesErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrStatusConflict
	}
	b.StartTime = rng.Start
	b.EndTime = rng.End
	b.TotalPrice = totalPrice
	return nil
}

func (f *fakeBookingRepo) UpdateLocation(_ context.Context, id int64, locationID int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.LocationID = locationID
	return nil
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
	free bool
	err  error
}

func (f *fakeChecker) RangeFree(context.Context, int64, domain.TimeRange, *int64) (bool, error) {
	return f.free, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	ownerID    = uuid.MustParse("7b0e5f5a-2a3f-4a52-9d6e-1c43a1b0c001")
	strangerID = uuid.MustParse("7b0e5f5a-2a3f-4a52-9d6e-1c43a1b0c002")
)

func newTestService(repo *fakeBookingRepo, checker *fakeChecker) *Service {
	return NewService(
		repo,
		&fakeLocationRepo{locations: map[int64]*domain.Location{1: {ID: 1, Name: "Central"}}},
		checker,
		fakeTxManager{},
		nopLogger{},
	)
}

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		CycleID:     1,
		UserID:      ownerID,
		LocationID:  1,
		StartTime:   date(2026, 9, 10),
		EndTime:     date(2026, 9, 13),
		Status:      domain.StatusConfirmed,
		CycleName:   "City Bike",
		PricePerDay: 15,
		TotalPrice:  45,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
	svc := newTestService(repo, &fakeChecker{free: true})

	t.Run("owner can read", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, ownerID, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, strangerID, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff can read any booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, strangerID, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99, ownerID, false)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_StartAndComplete(t *testing.T) {
	t.Run("confirmed to active to complete", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		require.NoError(t, svc.Start(context.Background(), 1))
		assert.Equal(t, domain.StatusActive, repo.bookings[1].Status)

		require.NoError(t, svc.Complete(context.Background(), 1))
		assert.Equal(t, domain.StatusComplete, repo.bookings[1].Status)
	})

	t.Run("start twice fails", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		require.NoError(t, svc.Start(context.Background(), 1))
		assert.ErrorIs(t, svc.Start(context.Background(), 1), ErrIllegalTransition)
	})

	t.Run("complete without start fails", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		assert.ErrorIs(t, svc.Complete(context.Background(), 1), ErrIllegalTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
		svc := newTestService(repo, &fakeChecker{free: true})

		assert.ErrorIs(t, svc.Start(context.Background(), 42), ErrBookingNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("owner cancels confirmed booking", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID: ownerID,
			Reason: "change of plans",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
		require.NotNil(t, repo.bookings[1].CancellationReason)
		assert.Equal(t, "change of plans", *repo.bookings[1].CancellationReason)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	})

	t.Run("staff cancels someone else's booking", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			UserID:  strangerID,
			IsStaff: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	})

	t.Run("active booking cannot be cancelled", func(t *testing.T) {
		b := confirmedBooking(1)
		b.Status = domain.StatusActive
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
		svc := newTestService(repo, &fakeChecker{free: true})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("cancel is idempotent failure on cancelled booking", func(t *testing.T) {
		b := confirmedBooking(1)
		b.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
		svc := newTestService(repo, &fakeChecker{free: true})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestService_Reschedule(t *testing.T) {
	t.Run("recomputes total from captured rate", func(t *testing.T) {
		b := confirmedBooking(1)
		b.Accessories = []domain.BookingAccessory{
			{BookingID: 1, AccessoryID: 1, Name: "Helmet", PriceAtBooking: 5},
		}
		b.TotalPrice = 50
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
		svc := newTestService(repo, &fakeChecker{free: true})

		resp, err := svc.Reschedule(context.Background(), 1, &models.RescheduleBookingRequest{
			StartTime: date(2026, 9, 10),
			EndTime:   date(2026, 9, 15), // 5 дней * 15 + 5 за шлем
		})
		require.NoError(t, err)
		assert.InDelta(t, 80, resp.TotalPrice, 1e-9)
		assert.Equal(t, date(2026, 9, 15), repo.bookings[1].EndTime)
	})

	t.Run("conflict with another booking", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: false})

		_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleBookingRequest{
			StartTime: date(2026, 9, 10),
			EndTime:   date(2026, 9, 15),
		})
		assert.ErrorIs(t, err, ErrDateConflict)
	})

	t.Run("active booking is not reschedulable", func(t *testing.T) {
		b := confirmedBooking(1)
		b.Status = domain.StatusActive
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
		svc := newTestService(repo, &fakeChecker{free: true})

		_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleBookingRequest{
			StartTime: date(2026, 9, 10),
			EndTime:   date(2026, 9, 15),
		})
		assert.ErrorIs(t, err, ErrNotReschedulable)
	})

	t.Run("invalid range", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleBookingRequest{
			StartTime: date(2026, 9, 15),
			EndTime:   date(2026, 9, 10),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestService_ReassignLocation(t *testing.T) {
	t.Run("moves booking to existing location", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		require.NoError(t, svc.ReassignLocation(context.Background(), 1, 1))
		assert.Equal(t, int64(1), repo.bookings[1].LocationID)
	})

	t.Run("unknown location", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
		svc := newTestService(repo, &fakeChecker{free: true})

		err := svc.ReassignLocation(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: confirmedBooking(1)}}
	svc := newTestService(repo, &fakeChecker{free: true})

	t.Run("user reads own history", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID:      ownerID,
			RequestedBy: ownerID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("user cannot read someone else's history", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID:      ownerID,
			RequestedBy: strangerID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status := "pending"
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID:      ownerID,
			RequestedBy: ownerID,
			Status:      &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
