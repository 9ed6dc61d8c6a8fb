package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	inventoryService "github.com/cycleaway/booking-service/internal/service/inventory"
	"github.com/cycleaway/booking-service/internal/service/inventory/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgCycleNotFound      = "велосипед не найден"
	msgAccessoryNotFound  = "аксессуар не найден"
	msgLocationNotFound   = "точка проката не найдена"
)

// Handler обслуживает CRUD эндпоинты инвентаря. Эндпоинты записи
// защищены middleware RequireStaff на уровне роутера.
type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Велосипеды

// CreateCycle POST /api/v1/cycles
func (h *Handler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req CreateCycleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cycles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCycle(r.Context(), &models.CreateCycleRequest{
		Name:        req.Name,
		Category:    req.Category,
		PricePerDay: req.PricePerDay,
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.respondServiceError(w, "POST /cycles", err)
		return
	}

	h.logger.Info("POST /cycles - Cycle created: cycle_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// GetCycle GET /api/v1/cycles/{cycleId}
func (h *Handler) GetCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cycleId")
	if !ok {
		return
	}

	result, err := h.service.GetCycle(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /cycles/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListCycles GET /api/v1/cycles?locationId=...&category=...&onlyAvailable=true
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	req := &models.ListCyclesRequest{}
	query := r.URL.Query()

	if raw := query.Get("locationId"); raw != "" {
		locationID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /cycles - Invalid locationId: %v", err)
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		req.LocationID = &locationID
	}

	if category := query.Get("category"); category != "" {
		req.Category = &category
	}

	if raw := query.Get("onlyAvailable"); raw != "" {
		onlyAvailable, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /cycles - Invalid onlyAvailable: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		req.OnlyAvailable = onlyAvailable
	}

	result, err := h.service.ListCycles(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "GET /cycles", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateCycle PUT /api/v1/cycles/{cycleId}
func (h *Handler) UpdateCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cycleId")
	if !ok {
		return
	}

	var req UpdateCycleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cycles/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCycle(r.Context(), id, &models.UpdateCycleRequest{
		Name:        req.Name,
		Category:    req.Category,
		PricePerDay: req.PricePerDay,
		LocationID:  req.LocationID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.respondServiceError(w, "PUT /cycles/{id}", err)
		return
	}

	h.logger.Info("PUT /cycles/{id} - Cycle updated: cycle_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// SetCycleAvailable PATCH /api/v1/cycles/{cycleId}/availability
func (h *Handler) SetCycleAvailable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "cycleId")
	if !ok {
		return
	}

	var req SetAvailableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /cycles/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetCycleAvailable(r.Context(), id, req.Available); err != nil {
		h.respondServiceError(w, "PATCH /cycles/{id}/availability", err)
		return
	}

	h.logger.Info("PATCH /cycles/{id}/availability - cycle_id=%d, available=%t", id, req.Available)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// Аксессуары

// CreateAccessory POST /api/v1/accessories
func (h *Handler) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	var req CreateAccessoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /accessories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateAccessory(r.Context(), &models.CreateAccessoryRequest{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.respondServiceError(w, "POST /accessories", err)
		return
	}

	h.logger.Info("POST /accessories - Accessory created: accessory_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListAccessories GET /api/v1/accessories
func (h *Handler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAccessories(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /accessories", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateAccessory PUT /api/v1/accessories/{accessoryId}
func (h *Handler) UpdateAccessory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "accessoryId")
	if !ok {
		return
	}

	var req UpdateAccessoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /accessories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateAccessory(r.Context(), id, &models.UpdateAccessoryRequest{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.respondServiceError(w, "PUT /accessories/{id}", err)
		return
	}

	h.logger.Info("PUT /accessories/{id} - Accessory updated: accessory_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Точки проката

// CreateLocation POST /api/v1/locations
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /locations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateLocation(r.Context(), &models.CreateLocationRequest{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.respondServiceError(w, "POST /locations", err)
		return
	}

	h.logger.Info("POST /locations - Location created: location_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ListLocations GET /api/v1/locations
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLocations(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /locations", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateLocation PUT /api/v1/locations/{locationId}
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "locationId")
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateLocation(r.Context(), id, &models.UpdateLocationRequest{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		h.respondServiceError(w, "PUT /locations/{id}", err)
		return
	}

	h.logger.Info("PUT /locations/{id} - Location updated: location_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// pathID извлекает int64 параметр из пути
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid %s: %v", r.Method, r.URL.Path, name, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

// respondServiceError маппит ошибки сервиса инвентаря в HTTP ответы
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, inventoryService.ErrCycleNotFound):
		h.logger.Warn("%s - Cycle not found", route)
		handlers.RespondNotFound(w, msgCycleNotFound)

	case errors.Is(err, inventoryService.ErrAccessoryNotFound):
		h.logger.Warn("%s - Accessory not found", route)
		handlers.RespondNotFound(w, msgAccessoryNotFound)

	case errors.Is(err, inventoryService.ErrLocationNotFound):
		h.logger.Warn("%s - Location not found", route)
		handlers.RespondNotFound(w, msgLocationNotFound)

	case errors.Is(err, inventoryService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
