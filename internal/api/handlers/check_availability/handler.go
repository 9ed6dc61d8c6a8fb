package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	"github.com/cycleaway/booking-service/internal/domain"
	"github.com/cycleaway/booking-service/internal/service/availability"
)

const (
	msgInvalidCycleID = "некорректный ID велосипеда"
	msgMissingDates   = "параметры from и to обязательны"
	msgInvalidDates   = "некорректный формат дат, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidRange   = "некорректный диапазон дат"
	msgCycleNotFound  = "велосипед не найден"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CycleID   int64  `json:"cycleId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	// Причина недоступности: "date_conflict" либо "out_of_service"
	Reason *string `json:"reason,omitempty"`
}

const (
	reasonDateConflict = "date_conflict"
	reasonOutOfService = "out_of_service"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/cycles/{cycleId}/availability?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cycleID, err := strconv.ParseInt(vars["cycleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /cycles/{id}/availability - Invalid cycle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCycleID)
		return
	}

	query := r.URL.Query()
	fromRaw, toRaw := query.Get("from"), query.Get("to")
	if fromRaw == "" || toRaw == "" {
		h.logger.Warn("GET /cycles/{id}/availability - Missing date params: cycle_id=%d", cycleID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	from, err := handlers.ParseTime(fromRaw)
	if err != nil {
		h.logger.Warn("GET /cycles/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	to, err := handlers.ParseTime(toRaw)
	if err != nil {
		h.logger.Warn("GET /cycles/{id}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	rng, err := domain.NewTimeRange(from, to)
	if err != nil {
		h.logger.Warn("GET /cycles/{id}/availability - Invalid range: cycle_id=%d", cycleID)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	resp := &AvailabilityResponse{
		CycleID:   cycleID,
		StartTime: rng.Start.Format(time.RFC3339),
		EndTime:   rng.End.Format(time.RFC3339),
	}

	free, err := h.checker.IsAvailable(r.Context(), cycleID, rng, nil)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrCycleNotFound):
			h.logger.Warn("GET /cycles/{id}/availability - Cycle not found: cycle_id=%d", cycleID)
			handlers.RespondNotFound(w, msgCycleNotFound)
			return

		case errors.Is(err, availability.ErrCycleUnavailable):
			// Выведен из строя - это не ошибка запроса, а ответ "занят"
			reason := reasonOutOfService
			resp.Available = false
			resp.Reason = &reason

		default:
			h.logger.Error("GET /cycles/{id}/availability - Failed to check: cycle_id=%d, error=%v", cycleID, err)
			handlers.RespondInternalError(w)
			return
		}
	} else {
		resp.Available = free
		if !free {
			reason := reasonDateConflict
			resp.Reason = &reason
		}
	}

	h.logger.Info("GET /cycles/{id}/availability - cycle_id=%d, available=%t", cycleID, resp.Available)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
