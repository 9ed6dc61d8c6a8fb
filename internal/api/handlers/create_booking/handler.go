package create_booking

import (
	"errors"
	"net/http"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	"github.com/cycleaway/booking-service/internal/api/middleware"
	createBooking "github.com/cycleaway/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается RFC 3339 или YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCycleNotFound      = "велосипед не найден"
	msgCycleUnavailable   = "велосипед выведен из проката"
	msgDateConflict       = "выбранные даты уже заняты"
	msgAccessoryNotFound  = "аксессуар не найден"
	msgInvalidRange       = "некорректный диапазон дат"
	msgDateInPast         = "дата начала аренды в прошлом"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDateConflict):
			h.logger.Warn("POST /bookings - Date conflict: user_id=%s, cycle_id=%d", userID, req.CycleID)
			handlers.RespondError(w, http.StatusConflict, msgDateConflict)

		case errors.Is(err, createBooking.ErrCycleNotFound):
			h.logger.Warn("POST /bookings - Cycle not found: cycle_id=%d", req.CycleID)
			handlers.RespondNotFound(w, msgCycleNotFound)

		case errors.Is(err, createBooking.ErrCycleUnavailable):
			h.logger.Warn("POST /bookings - Cycle unavailable: cycle_id=%d", req.CycleID)
			handlers.RespondError(w, http.StatusConflict, msgCycleUnavailable)

		case errors.Is(err, createBooking.ErrAccessoryNotFound):
			h.logger.Warn("POST /bookings - Accessory not found: user_id=%s, cycle_id=%d", userID, req.CycleID)
			handlers.RespondNotFound(w, msgAccessoryNotFound)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%s, cycle_id=%d", userID, req.CycleID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Start date in past: user_id=%s, cycle_id=%d", userID, req.CycleID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, cycle_id=%d, error=%v",
				userID, req.CycleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%s, cycle_id=%d",
		result.ID, userID, req.CycleID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
