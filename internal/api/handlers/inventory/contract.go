package inventory

import (
	"context"

	"github.com/cycleaway/booking-service/internal/service/inventory/models"
)

type InventoryService interface {
	CreateCycle(ctx context.Context, req *models.CreateCycleRequest) (*models.CycleResponse, error)
	GetCycle(ctx context.Context, id int64) (*models.CycleResponse, error)
	ListCycles(ctx context.Context, req *models.ListCyclesRequest) (*models.CycleListResponse, error)
	UpdateCycle(ctx context.Context, id int64, req *models.UpdateCycleRequest) (*models.CycleResponse, error)
	SetCycleAvailable(ctx context.Context, id int64, available bool) error

	CreateAccessory(ctx context.Context, req *models.CreateAccessoryRequest) (*models.AccessoryResponse, error)
	ListAccessories(ctx context.Context) (*models.AccessoryListResponse, error)
	UpdateAccessory(ctx context.Context, id int64, req *models.UpdateAccessoryRequest) (*models.AccessoryResponse, error)

	CreateLocation(ctx context.Context, req *models.CreateLocationRequest) (*models.LocationResponse, error)
	ListLocations(ctx context.Context) (*models.LocationListResponse, error)
	UpdateLocation(ctx context.Context, id int64, req *models.UpdateLocationRequest) (*models.LocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
