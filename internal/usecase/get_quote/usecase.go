package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/cycleaway/booking-service/internal/domain"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
)

// UseCase use case для расчёта стоимости аренды без создания
// бронирования. Доступность дат не проверяется - это чистый прайсинг.
type UseCase struct {
	cycleRepo     CycleRepository
	accessoryRepo AccessoryRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(cycleRepo CycleRepository, accessoryRepo AccessoryRepository, logger Logger) *UseCase {
	return &UseCase{
		cycleRepo:     cycleRepo,
		accessoryRepo: accessoryRepo,
		logger:        logger,
	}
}

// Execute выполняет расчёт стоимости аренды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: cycle=%d, range=[%s, %s)",
		req.CycleID, req.StartTime.Format(domain.DateFormat), req.EndTime.Format(domain.DateFormat))

	if req.CycleID <= 0 {
		return nil, fmt.Errorf("%w: cycleID must be positive", ErrInvalidInput)
	}

	rng, err := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("GetQuote: invalid range: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	cycle, err := uc.cycleRepo.GetByID(ctx, req.CycleID)
	if err != nil {
		if errors.Is(err, cycleRepo.ErrCycleNotFound) {
			uc.logger.Warn("GetQuote: cycle id=%d not found", req.CycleID)
			return nil, ErrCycleNotFound
		}
		uc.logger.Error("GetQuote: failed to get cycle id=%d: %v", req.CycleID, err)
		return nil, fmt.Errorf("%w: failed to get cycle: %v", ErrInternal, err)
	}

	var accessories []*domain.Accessory
	if len(req.AccessoryIDs) > 0 {
		loaded, err := uc.accessoryRepo.GetByIDs(ctx, req.AccessoryIDs)
		if err != nil {
			uc.logger.Error("GetQuote: failed to get accessories: %v", err)
			return nil, fmt.Errorf("%w: failed to get accessories: %v", ErrInternal, err)
		}
		if len(loaded) != len(req.AccessoryIDs) {
			uc.logger.Warn("GetQuote: %d of %d accessories found", len(loaded), len(req.AccessoryIDs))
			return nil, ErrAccessoryNotFound
		}
		accessories = loaded
	}

	totalPrice, err := domain.Price(rng, cycle.PricePerDay, accessories)
	if err != nil {
		uc.logger.Error("GetQuote: pricing failed for cycle id=%d: %v", req.CycleID, err)
		return nil, fmt.Errorf("%w: pricing: %v", ErrInternal, err)
	}

	days := rng.DurationInWholeDays()

	resp := &Response{
		CycleID:     cycle.ID,
		CycleName:   cycle.Name,
		Days:        days,
		PricePerDay: cycle.PricePerDay,
		CyclePrice:  float64(days) * cycle.PricePerDay,
		Accessories: make([]AccessoryQuote, 0, len(accessories)),
		TotalPrice:  totalPrice,
	}
	for _, a := range accessories {
		resp.Accessories = append(resp.Accessories, AccessoryQuote{
			AccessoryID: a.ID,
			Name:        a.Name,
			Price:       a.Price,
		})
	}

	return resp, nil
}
