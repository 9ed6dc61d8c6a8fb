package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/cycleaway/booking-service/internal/domain"
	bookingRepo "github.com/cycleaway/booking-service/internal/infra/storage/booking"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	cycleRepo     CycleRepository
	accessoryRepo AccessoryRepository
	checker       AvailabilityChecker
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	cycleRepo CycleRepository,
	accessoryRepo AccessoryRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		cycleRepo:     cycleRepo,
		accessoryRepo: accessoryRepo,
		checker:       checker,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции; чтение occupying-бронирований внутри неё берёт FOR UPDATE.
// Последней линией защиты от гонки двух одновременных бронирований
// служит exclusion constraint в БД - нарушение приходит как ErrDateConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, cycle=%d, range=[%s, %s)",
		req.UserID, req.CycleID, req.StartTime.Format(domain.DateFormat), req.EndTime.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация диапазона дат
	rng, err := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid range: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	now := uc.timeProvider.Now()
	if err := validateNotInPast(rng.Start, now); err != nil {
		uc.logger.Warn("CreateBooking: start date in the past: %s", rng.Start.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Загружаем аксессуары до транзакции: их цены фиксируются на
	// момент бронирования, блокировка не нужна
	var accessories []*domain.Accessory
	if len(req.AccessoryIDs) > 0 {
		loaded, err := uc.accessoryRepo.GetByIDs(ctx, req.AccessoryIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get accessories: %v", err)
			return nil, fmt.Errorf("%w: failed to get accessories: %v", ErrInternal, err)
		}
		accessories, err = resolveAccessories(req.AccessoryIDs, loaded)
		if err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем велосипед
		cycle, err := uc.cycleRepo.GetByID(txCtx, req.CycleID)
		if err != nil {
			if errors.Is(err, cycleRepo.ErrCycleNotFound) {
				uc.logger.Warn("CreateBooking: cycle id=%d not found", req.CycleID)
				return ErrCycleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get cycle id=%d: %v", req.CycleID, err)
			return fmt.Errorf("%w: failed to get cycle: %v", ErrInternal, err)
		}

		// 4.2. Выведенный из строя велосипед недоступен независимо от дат
		if !cycle.IsBookable() {
			uc.logger.Warn("CreateBooking: cycle id=%d is out of service", req.CycleID)
			return ErrCycleUnavailable
		}

		// 4.3. Проверяем пересечение дат с occupying-бронированиями
		free, err := uc.checker.RangeFree(txCtx, req.CycleID, rng, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("CreateBooking: cycle id=%d has conflicting booking", req.CycleID)
			return ErrDateConflict
		}

		// 4.4. Считаем итоговую стоимость
		totalPrice, err := domain.Price(rng, cycle.PricePerDay, accessories)
		if err != nil {
			uc.logger.Error("CreateBooking: pricing failed for cycle id=%d: %v", req.CycleID, err)
			return fmt.Errorf("%w: pricing: %v", ErrInternal, err)
		}

		// 4.5. Создаем бронирование с денормализацией данных велосипеда
		// и цен аксессуаров на момент бронирования
		booking := &domain.Booking{
			CycleID:    cycle.ID,
			UserID:     req.UserID,
			LocationID: cycle.LocationID,
			StartTime:  rng.Start,
			EndTime:    rng.End,
			Status:     domain.StatusConfirmed,

			CycleName:   cycle.Name,
			PricePerDay: cycle.PricePerDay,
			TotalPrice:  totalPrice,
		}
		for _, a := range accessories {
			booking.Accessories = append(booking.Accessories, domain.BookingAccessory{
				AccessoryID:    a.ID,
				Name:           a.Name,
				PriceAtBooking: a.Price,
			})
		}

		// 4.6. Сохраняем бронирование вместе с аксессуарами
		created, err := uc.bookingRepo.CreateWithAccessories(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDateConflict) {
				// Exclusion constraint поймал гонку, которую не увидел
				// предварительный чек
				uc.logger.Warn("CreateBooking: cycle id=%d date conflict on insert", req.CycleID)
				return ErrDateConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalPrice)

	return toResponse(result), nil
}

// toResponse конвертирует domain модель в response
func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		ID:          b.ID,
		CycleID:     b.CycleID,
		UserID:      b.UserID,
		LocationID:  b.LocationID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		CycleName:   b.CycleName,
		PricePerDay: b.PricePerDay,
		TotalPrice:  b.TotalPrice,
		Accessories: make([]AccessoryItem, 0, len(b.Accessories)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	for _, a := range b.Accessories {
		resp.Accessories = append(resp.Accessories, AccessoryItem{
			AccessoryID:    a.AccessoryID,
			Name:           a.Name,
			PriceAtBooking: a.PriceAtBooking,
		})
	}

	return resp
}
