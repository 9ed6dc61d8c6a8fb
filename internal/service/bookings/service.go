package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cycleaway/booking-service/internal/domain"
	bookingRepo "github.com/cycleaway/booking-service/internal/infra/storage/booking"
	locationRepo "github.com/cycleaway/booking-service/internal/infra/storage/location"
	"github.com/cycleaway/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями: чтение,
// переходы жизненного цикла и правки персонала. Создание бронирований
// живет в usecase create_booking.
type Service struct {
	bookingRepo  BookingRepository
	locationRepo LocationRepository
	checker      AvailabilityChecker
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	locationRepo LocationRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		locationRepo: locationRepo,
		checker:      checker,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, персонал - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID uuid.UUID, isStaff bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isStaff && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	// Пользователь видит только свою историю
	if !req.IsStaff && req.RequestedBy != req.UserID {
		s.logger.Warn("GetUserBookings: access denied for user=%s to history of user=%s", req.RequestedBy, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetLocationBookings получает бронирования точки проката с фильтрацией
// по периоду и статусу. Доступно только персоналу (гарантируется
// middleware на уровне API).
func (s *Service) GetLocationBookings(ctx context.Context, req *models.GetLocationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetLocationBookings: fetching bookings for location=%d", req.LocationID)

	if _, err := s.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("GetLocationBookings: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetLocationBookings: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: GetLocationBookings - failed to get location: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetLocationBookings: invalid filter for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByLocationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetLocationBookings: repository error for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: GetLocationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLocationBookings: successfully fetched %d bookings for location=%d", len(bookings), req.LocationID)
	return models.FromDomainBookingList(bookings), nil
}

// Start переводит бронирование confirmed → active (выдача велосипеда).
// Любой другой исходный статус - недопустимый переход.
func (s *Service) Start(ctx context.Context, bookingID int64) error {
	s.logger.Info("Start: starting booking id=%d", bookingID)
	return s.transition(ctx, bookingID, domain.StatusConfirmed, domain.StatusActive)
}

// Complete переводит бронирование active → complete (возврат велосипеда).
// Смена статуса сразу исключает бронирование из occupying-набора и
// освобождает велосипед для новых бронирований.
func (s *Service) Complete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Complete: completing booking id=%d", bookingID)
	return s.transition(ctx, bookingID, domain.StatusActive, domain.StatusComplete)
}

// transition применяет переход статуса атомарно: CAS-обновление по
// ожидаемому исходному статусу исключает потерю обновления при гонке
// двух действий персонала.
func (s *Service) transition(ctx context.Context, bookingID int64, from, to domain.BookingStatus) error {
	if !domain.CanTransition(from, to) {
		return ErrIllegalTransition
	}

	err := s.bookingRepo.UpdateStatus(ctx, bookingID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("transition: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("transition: booking id=%d is not in status %s", bookingID, from)
			return ErrIllegalTransition
		default:
			s.logger.Error("transition: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("transition: booking id=%d moved %s -> %s", bookingID, from, to)
	return nil
}

// Cancel отменяет бронирование. Разрешено только из confirmed; владелец
// отменяет своё бронирование, персонал - любое. Отмена - это статус, а
// не удаление: запись остаётся в истории.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%s", bookingID, req.UserID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !req.IsStaff && booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%s to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrIllegalTransition
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, domain.StatusConfirmed, req.Reason); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Статус изменился между чтением и CAS-обновлением
			s.logger.Warn("Cancel: booking id=%d left confirmed status concurrently", bookingID)
			return ErrIllegalTransition
		default:
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Reschedule изменяет даты бронирования. Разрешено только пока
// бронирование в статусе confirmed; доступность перепроверяется в
// сериализуемой транзакции, при этом собственное бронирование
// исключается из набора конфликтов. Итоговая цена пересчитывается по
// ставке, зафиксированной при создании бронирования.
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d to [%s, %s)", bookingID, req.StartTime, req.EndTime)

	rng, err := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Warn("Reschedule: invalid range for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	var result *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			s.logger.Warn("Reschedule: booking id=%d is not editable, status=%s", bookingID, booking.Status)
			return ErrNotReschedulable
		}

		free, err := s.checker.RangeFree(txCtx, booking.CycleID, rng, &bookingID)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - availability check: %v", ErrInternal, err)
		}
		if !free {
			s.logger.Warn("Reschedule: booking id=%d dates conflict on cycle id=%d", bookingID, booking.CycleID)
			return ErrDateConflict
		}

		// Пересчитываем стоимость по ставке и ценам аксессуаров,
		// зафиксированным при создании бронирования
		totalPrice := float64(rng.DurationInWholeDays()) * booking.PricePerDay
		for _, a := range booking.Accessories {
			totalPrice += a.PriceAtBooking
		}

		if err := s.bookingRepo.UpdateDates(txCtx, bookingID, rng, totalPrice); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrDateConflict):
				return ErrDateConflict
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				return ErrNotReschedulable
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			default:
				return fmt.Errorf("%w: Reschedule - update dates: %v", ErrInternal, err)
			}
		}

		booking.StartTime = rng.Start
		booking.EndTime = rng.End
		booking.TotalPrice = totalPrice
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: successfully rescheduled booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// ReassignLocation переназначает точку проката бронирования
func (s *Service) ReassignLocation(ctx context.Context, bookingID int64, locationID int64) error {
	s.logger.Info("ReassignLocation: booking id=%d to location id=%d", bookingID, locationID)

	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			s.logger.Warn("ReassignLocation: location id=%d not found", locationID)
			return ErrLocationNotFound
		}
		s.logger.Error("ReassignLocation: failed to get location id=%d: %v", locationID, err)
		return fmt.Errorf("%w: ReassignLocation - failed to get location: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.UpdateLocation(ctx, bookingID, locationID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ReassignLocation: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("ReassignLocation: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: ReassignLocation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReassignLocation: booking id=%d reassigned to location id=%d", bookingID, locationID)
	return nil
}
