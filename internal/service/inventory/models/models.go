package models

import (
	"time"

	"github.com/cycleaway/booking-service/internal/domain"
)

// Request модели

// CreateCycleRequest запрос на добавление велосипеда
type CreateCycleRequest struct {
	Name        string
	Category    string
	PricePerDay float64
	LocationID  int64
	ImageURL    *string
}

// UpdateCycleRequest запрос на изменение велосипеда.
// Nil-поля не изменяются.
type UpdateCycleRequest struct {
	Name        *string
	Category    *string
	PricePerDay *float64
	LocationID  *int64
	ImageURL    *string
}

// CreateAccessoryRequest запрос на добавление аксессуара
type CreateAccessoryRequest struct {
	Name  string
	Price float64
}

// UpdateAccessoryRequest запрос на изменение аксессуара
type UpdateAccessoryRequest struct {
	Name  *string
	Price *float64
}

// CreateLocationRequest запрос на добавление точки проката
type CreateLocationRequest struct {
	Name    string
	Address string
}

// UpdateLocationRequest запрос на изменение точки проката
type UpdateLocationRequest struct {
	Name    *string
	Address *string
}

// ListCyclesRequest запрос на получение велосипедов с фильтрацией
type ListCyclesRequest struct {
	LocationID    *int64
	Category      *string
	OnlyAvailable bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListCyclesRequest) ToDomainFilter() domain.CycleFilter {
	return domain.CycleFilter{
		LocationID:    r.LocationID,
		Category:      r.Category,
		OnlyAvailable: r.OnlyAvailable,
	}
}

// Response модели

// CycleResponse ответ с данными велосипеда
type CycleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	PricePerDay float64   `json:"pricePerDay"`
	Available   bool      `json:"available"`
	LocationID  int64     `json:"locationId"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CycleListResponse ответ со списком велосипедов
type CycleListResponse struct {
	Cycles []CycleResponse `json:"cycles"`
}

// AccessoryResponse ответ с данными аксессуара
type AccessoryResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AccessoryListResponse ответ со списком аксессуаров
type AccessoryListResponse struct {
	Accessories []AccessoryResponse `json:"accessories"`
}

// LocationResponse ответ с данными точки проката
type LocationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// LocationListResponse ответ со списком точек проката
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// Методы конвертации

// FromDomainCycle конвертирует domain модель в DTO
func FromDomainCycle(c *domain.Cycle) *CycleResponse {
	if c == nil {
		return nil
	}
	return &CycleResponse{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		PricePerDay: c.PricePerDay,
		Available:   c.Available,
		LocationID:  c.LocationID,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainCycleList конвертирует список domain моделей в DTO
func FromDomainCycleList(cycles []*domain.Cycle) *CycleListResponse {
	resp := &CycleListResponse{Cycles: make([]CycleResponse, 0, len(cycles))}
	for _, c := range cycles {
		if cycleResp := FromDomainCycle(c); cycleResp != nil {
			resp.Cycles = append(resp.Cycles, *cycleResp)
		}
	}
	return resp
}

// FromDomainAccessory конвертирует domain модель в DTO
func FromDomainAccessory(a *domain.Accessory) *AccessoryResponse {
	if a == nil {
		return nil
	}
	return &AccessoryResponse{
		ID:    a.ID,
		Name:  a.Name,
		Price: a.Price,
	}
}

// FromDomainAccessoryList конвертирует список domain моделей в DTO
func FromDomainAccessoryList(accessories []*domain.Accessory) *AccessoryListResponse {
	resp := &AccessoryListResponse{Accessories: make([]AccessoryResponse, 0, len(accessories))}
	for _, a := range accessories {
		if accResp := FromDomainAccessory(a); accResp != nil {
			resp.Accessories = append(resp.Accessories, *accResp)
		}
	}
	return resp
}

// FromDomainLocation конвертирует domain модель в DTO
func FromDomainLocation(l *domain.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{
		ID:      l.ID,
		Name:    l.Name,
		Address: l.Address,
	}
}

// FromDomainLocationList конвертирует список domain моделей в DTO
func FromDomainLocationList(locations []*domain.Location) *LocationListResponse {
	resp := &LocationListResponse{Locations: make([]LocationResponse, 0, len(locations))}
	for _, l := range locations {
		if locResp := FromDomainLocation(l); locResp != nil {
			resp.Locations = append(resp.Locations, *locResp)
		}
	}
	return resp
}
