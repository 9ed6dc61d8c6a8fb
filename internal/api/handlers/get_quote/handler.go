package get_quote

import (
	"errors"
	"net/http"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	getQuote "github.com/cycleaway/booking-service/internal/usecase/get_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidRange       = "некорректный диапазон дат"
	msgCycleNotFound      = "велосипед не найден"
	msgAccessoryNotFound  = "аксессуар не найден"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GetQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrCycleNotFound):
			h.logger.Warn("POST /quotes - Cycle not found: cycle_id=%d", req.CycleID)
			handlers.RespondNotFound(w, msgCycleNotFound)

		case errors.Is(err, getQuote.ErrAccessoryNotFound):
			h.logger.Warn("POST /quotes - Accessory not found: cycle_id=%d", req.CycleID)
			handlers.RespondNotFound(w, msgAccessoryNotFound)

		case errors.Is(err, getQuote.ErrInvalidRange):
			h.logger.Warn("POST /quotes - Invalid range: cycle_id=%d", req.CycleID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /quotes - Failed to get quote: cycle_id=%d, error=%v", req.CycleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: cycle_id=%d, total=%.2f", req.CycleID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
