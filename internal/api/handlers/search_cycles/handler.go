package search_cycles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	searchCycles "github.com/cycleaway/booking-service/internal/usecase/search_cycles"
)

const (
	msgInvalidLocationID = "некорректный ID точки проката"
	msgMissingDates      = "параметры from и to обязательны"
	msgInvalidDates      = "некорректный формат дат, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgLocationNotFound  = "точка проката не найдена"
)

type Handler struct {
	useCase SearchCyclesUseCase
	logger  Logger
}

func NewHandler(useCase SearchCyclesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/cycles?from=...&to=...&category=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/cycles - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	query := r.URL.Query()
	fromRaw, toRaw := query.Get("from"), query.Get("to")
	if fromRaw == "" || toRaw == "" {
		h.logger.Warn("GET /locations/{id}/cycles - Missing date params: location_id=%d", locationID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	from, err := handlers.ParseTime(fromRaw)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/cycles - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	to, err := handlers.ParseTime(toRaw)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/cycles - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	req := &searchCycles.Request{
		LocationID: locationID,
		StartTime:  from,
		EndTime:    to,
	}
	if category := query.Get("category"); category != "" {
		req.Category = &category
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchCycles.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/cycles - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, searchCycles.ErrInvalidRange):
			h.logger.Warn("GET /locations/{id}/cycles - Invalid range: location_id=%d", locationID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, searchCycles.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/cycles - Invalid input: location_id=%d, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidLocationID)

		default:
			h.logger.Error("GET /locations/{id}/cycles - Failed to search: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/cycles - Found %d free cycles: location_id=%d",
		len(result.Cycles), locationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
