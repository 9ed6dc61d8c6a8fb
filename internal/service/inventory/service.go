package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cycleaway/booking-service/internal/domain"
	accessoryRepo "github.com/cycleaway/booking-service/internal/infra/storage/accessory"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
	locationRepo "github.com/cycleaway/booking-service/internal/infra/storage/location"
	"github.com/cycleaway/booking-service/internal/service/inventory/models"
)

// Service сервис для управления инвентарём: велосипеды, аксессуары и
// точки проката. Правки инвентаря не трогают существующие бронирования:
// ставка и название велосипеда денормализованы в бронировании на момент
// его создания.
type Service struct {
	cycleRepo     CycleRepository
	accessoryRepo AccessoryRepository
	locationRepo  LocationRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса инвентаря
func NewService(
	cycleRepo CycleRepository,
	accessoryRepo AccessoryRepository,
	locationRepo LocationRepository,
	logger Logger,
) *Service {
	return &Service{
		cycleRepo:     cycleRepo,
		accessoryRepo: accessoryRepo,
		locationRepo:  locationRepo,
		logger:        logger,
	}
}

// Велосипеды

// CreateCycle добавляет новый велосипед в инвентарь
func (s *Service) CreateCycle(ctx context.Context, req *models.CreateCycleRequest) (*models.CycleResponse, error) {
	s.logger.Info("CreateCycle: creating cycle name=%s at location=%d", req.Name, req.LocationID)

	if err := validateCycleFields(req.Name, req.Category, req.PricePerDay); err != nil {
		s.logger.Warn("CreateCycle: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.locationRepo.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("%w: CreateCycle - failed to get location: %v", ErrInternal, err)
	}

	cycle := &domain.Cycle{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		PricePerDay: req.PricePerDay,
		Available:   true, // новый велосипед сразу в строю
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
	}

	created, err := s.cycleRepo.Create(ctx, cycle)
	if err != nil {
		s.logger.Error("CreateCycle: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCycle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCycle: successfully created cycle id=%d", created.ID)
	return models.FromDomainCycle(created), nil
}

// GetCycle получает велосипед по ID
func (s *Service) GetCycle(ctx context.Context, id int64) (*models.CycleResponse, error) {
	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cycleRepo.ErrCycleNotFound) {
			s.logger.Warn("GetCycle: cycle id=%d not found", id)
			return nil, ErrCycleNotFound
		}
		s.logger.Error("GetCycle: repository error for cycle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetCycle - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCycle(cycle), nil
}

// ListCycles получает велосипеды с фильтрацией по точке и категории
func (s *Service) ListCycles(ctx context.Context, req *models.ListCyclesRequest) (*models.CycleListResponse, error) {
	cycles, err := s.cycleRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListCycles: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCycles - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCycleList(cycles), nil
}

// UpdateCycle изменяет данные велосипеда. Nil-поля запроса не трогаются.
// Существующие бронирования сохраняют ставку на момент создания.
func (s *Service) UpdateCycle(ctx context.Context, id int64, req *models.UpdateCycleRequest) (*models.CycleResponse, error) {
	s.logger.Info("UpdateCycle: updating cycle id=%d", id)

	cycle, err := s.cycleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cycleRepo.ErrCycleNotFound) {
			return nil, ErrCycleNotFound
		}
		return nil, fmt.Errorf("%w: UpdateCycle - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		cycle.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		cycle.Category = strings.TrimSpace(*req.Category)
	}
	if req.PricePerDay != nil {
		cycle.PricePerDay = *req.PricePerDay
	}
	if req.ImageURL != nil {
		cycle.ImageURL = req.ImageURL
	}
	if req.LocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *req.LocationID); err != nil {
			if errors.Is(err, locationRepo.ErrLocationNotFound) {
				return nil, ErrLocationNotFound
			}
			return nil, fmt.Errorf("%w: UpdateCycle - failed to get location: %v", ErrInternal, err)
		}
		cycle.LocationID = *req.LocationID
	}

	if err := validateCycleFields(cycle.Name, cycle.Category, cycle.PricePerDay); err != nil {
		s.logger.Warn("UpdateCycle: validation failed for cycle id=%d: %v", id, err)
		return nil, err
	}

	if err := s.cycleRepo.Update(ctx, cycle); err != nil {
		if errors.Is(err, cycleRepo.ErrCycleNotFound) {
			return nil, ErrCycleNotFound
		}
		s.logger.Error("UpdateCycle: repository error for cycle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateCycle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateCycle: successfully updated cycle id=%d", id)
	return models.FromDomainCycle(cycle), nil
}

// SetCycleAvailable выводит велосипед из строя или возвращает его.
// Флаг действует только на новые бронирования: уже подтверждённые
// остаются как есть, их разбирает персонал.
func (s *Service) SetCycleAvailable(ctx context.Context, id int64, available bool) error {
	s.logger.Info("SetCycleAvailable: cycle id=%d available=%t", id, available)

	if err := s.cycleRepo.SetAvailable(ctx, id, available); err != nil {
		if errors.Is(err, cycleRepo.ErrCycleNotFound) {
			s.logger.Warn("SetCycleAvailable: cycle id=%d not found", id)
			return ErrCycleNotFound
		}
		s.logger.Error("SetCycleAvailable: repository error for cycle id=%d: %v", id, err)
		return fmt.Errorf("%w: SetCycleAvailable - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Аксессуары

// CreateAccessory добавляет новый аксессуар
func (s *Service) CreateAccessory(ctx context.Context, req *models.CreateAccessoryRequest) (*models.AccessoryResponse, error) {
	s.logger.Info("CreateAccessory: creating accessory name=%s", req.Name)

	if err := validateAccessoryFields(req.Name, req.Price); err != nil {
		s.logger.Warn("CreateAccessory: validation failed: %v", err)
		return nil, err
	}

	accessory := &domain.Accessory{
		Name:  strings.TrimSpace(req.Name),
		Price: req.Price,
	}

	created, err := s.accessoryRepo.Create(ctx, accessory)
	if err != nil {
		s.logger.Error("CreateAccessory: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAccessory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAccessory: successfully created accessory id=%d", created.ID)
	return models.FromDomainAccessory(created), nil
}

// ListAccessories получает все аксессуары
func (s *Service) ListAccessories(ctx context.Context) (*models.AccessoryListResponse, error) {
	accessories, err := s.accessoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListAccessories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAccessories - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAccessoryList(accessories), nil
}

// UpdateAccessory изменяет данные аксессуара. Уже прикреплённые к
// бронированиям аксессуары сохраняют цену на момент бронирования.
func (s *Service) UpdateAccessory(ctx context.Context, id int64, req *models.UpdateAccessoryRequest) (*models.AccessoryResponse, error) {
	s.logger.Info("UpdateAccessory: updating accessory id=%d", id)

	accessory, err := s.accessoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, accessoryRepo.ErrAccessoryNotFound) {
			return nil, ErrAccessoryNotFound
		}
		return nil, fmt.Errorf("%w: UpdateAccessory - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		accessory.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		accessory.Price = *req.Price
	}

	if err := validateAccessoryFields(accessory.Name, accessory.Price); err != nil {
		s.logger.Warn("UpdateAccessory: validation failed for accessory id=%d: %v", id, err)
		return nil, err
	}

	if err := s.accessoryRepo.Update(ctx, accessory); err != nil {
		if errors.Is(err, accessoryRepo.ErrAccessoryNotFound) {
			return nil, ErrAccessoryNotFound
		}
		s.logger.Error("UpdateAccessory: repository error for accessory id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateAccessory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateAccessory: successfully updated accessory id=%d", id)
	return models.FromDomainAccessory(accessory), nil
}

// Точки проката

// CreateLocation добавляет новую точку проката
func (s *Service) CreateLocation(ctx context.Context, req *models.CreateLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("CreateLocation: creating location name=%s", req.Name)

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxLocationNameLength {
		return nil, fmt.Errorf("%w: location name is required", ErrInvalidInput)
	}

	location := &domain.Location{
		Name:    name,
		Address: strings.TrimSpace(req.Address),
	}

	created, err := s.locationRepo.Create(ctx, location)
	if err != nil {
		s.logger.Error("CreateLocation: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLocation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLocation: successfully created location id=%d", created.ID)
	return models.FromDomainLocation(created), nil
}

// ListLocations получает все точки проката
func (s *Service) ListLocations(ctx context.Context) (*models.LocationListResponse, error) {
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainLocationList(locations), nil
}

// UpdateLocation изменяет данные точки проката
func (s *Service) UpdateLocation(ctx context.Context, id int64, req *models.UpdateLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("UpdateLocation: updating location id=%d", id)

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("%w: UpdateLocation - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > domain.MaxLocationNameLength {
			return nil, fmt.Errorf("%w: location name is required", ErrInvalidInput)
		}
		location.Name = name
	}
	if req.Address != nil {
		location.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("UpdateLocation: repository error for location id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateLocation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateLocation: successfully updated location id=%d", id)
	return models.FromDomainLocation(location), nil
}

// Валидация полей инвентаря

func validateCycleFields(name, category string, pricePerDay float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: cycle name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCycleNameLength {
		return fmt.Errorf("%w: cycle name is too long", ErrInvalidInput)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: cycle category is required", ErrInvalidInput)
	}
	if pricePerDay < 0 {
		return fmt.Errorf("%w: price per day must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateAccessoryFields(name string, price float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: accessory name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxAccessoryNameLength {
		return fmt.Errorf("%w: accessory name is too long", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: accessory price must not be negative", ErrInvalidInput)
	}
	return nil
}
