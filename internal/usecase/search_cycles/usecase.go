package search_cycles

import (
	"context"
	"errors"
	"fmt"

	"github.com/cycleaway/booking-service/internal/domain"
	locationRepo "github.com/cycleaway/booking-service/internal/infra/storage/location"
	"github.com/cycleaway/booking-service/pkg/ptr"
)

// UseCase use case для поиска свободных велосипедов точки проката
// на заданный период
type UseCase struct {
	cycleRepo    CycleRepository
	locationRepo LocationRepository
	checker      AvailabilityChecker
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cycleRepo CycleRepository,
	locationRepo LocationRepository,
	checker AvailabilityChecker,
	logger Logger,
) *UseCase {
	return &UseCase{
		cycleRepo:    cycleRepo,
		locationRepo: locationRepo,
		checker:      checker,
		logger:       logger,
	}
}

// Execute выполняет поиск свободных велосипедов.
// Результат - снимок на момент запроса: к моменту оформления велосипед
// может быть уже занят, это поймает создание бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchCycles: location=%d, range=[%s, %s)",
		req.LocationID, req.StartTime.Format(domain.DateFormat), req.EndTime.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	rng, err := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("SearchCycles: invalid range: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	// 2. Проверяем существование точки проката
	if _, err := uc.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("SearchCycles: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("SearchCycles: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 3. Получаем велосипеды точки: только те, что в строю
	cycles, err := uc.cycleRepo.List(ctx, domain.CycleFilter{
		LocationID:    ptr.Ptr(req.LocationID),
		Category:      req.Category,
		OnlyAvailable: true,
	})
	if err != nil {
		uc.logger.Error("SearchCycles: failed to list cycles: %v", err)
		return nil, fmt.Errorf("%w: failed to list cycles: %v", ErrInternal, err)
	}

	// 4. Отбираем велосипеды без пересечений дат
	resp := &Response{
		LocationID: req.LocationID,
		StartTime:  rng.Start,
		EndTime:    rng.End,
		Cycles:     make([]CycleItem, 0, len(cycles)),
	}

	days := rng.DurationInWholeDays()

	for _, cycle := range cycles {
		free, err := uc.checker.RangeFree(ctx, cycle.ID, rng, nil)
		if err != nil {
			uc.logger.Error("SearchCycles: availability check failed for cycle id=%d: %v", cycle.ID, err)
			return nil, fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !free {
			continue
		}

		resp.Cycles = append(resp.Cycles, CycleItem{
			ID:          cycle.ID,
			Name:        cycle.Name,
			Category:    cycle.Category,
			PricePerDay: cycle.PricePerDay,
			TotalPrice:  float64(days) * cycle.PricePerDay,
			ImageURL:    cycle.ImageURL,
		})
	}

	uc.logger.Info("SearchCycles: %d of %d cycles free at location=%d", len(resp.Cycles), len(cycles), req.LocationID)
	return resp, nil
}
