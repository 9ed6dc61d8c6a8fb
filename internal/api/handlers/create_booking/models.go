package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/cycleaway/booking-service/internal/api/handlers"
	createBooking "github.com/cycleaway/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CycleID      int64   `json:"cycleId"`
	StartTime    string  `json:"startTime"` // RFC 3339 либо "2026-09-05"
	EndTime      string  `json:"endTime"`
	AccessoryIDs []int64 `json:"accessoryIds,omitempty"`
}

// AccessoryResponse аксессуар в составе бронирования
type AccessoryResponse struct {
	AccessoryID    int64   `json:"accessoryId"`
	Name           string  `json:"name"`
	PriceAtBooking float64 `json:"priceAtBooking"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64               `json:"id"`
	CycleID     int64               `json:"cycleId"`
	UserID      uuid.UUID           `json:"userId"`
	LocationID  int64               `json:"locationId"`
	StartTime   string              `json:"startTime"`
	EndTime     string              `json:"endTime"`
	Status      string              `json:"status"`
	CycleName   string              `json:"cycleName"`
	PricePerDay float64             `json:"pricePerDay"`
	TotalPrice  float64             `json:"totalPrice"`
	Accessories []AccessoryResponse `json:"accessories"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID uuid.UUID) (*createBooking.Request, error) {
	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := handlers.ParseTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:       userID,
		CycleID:      r.CycleID,
		StartTime:    startTime,
		EndTime:      endTime,
		AccessoryIDs: r.AccessoryIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:          resp.ID,
		CycleID:     resp.CycleID,
		UserID:      resp.UserID,
		LocationID:  resp.LocationID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Status:      resp.Status,
		CycleName:   resp.CycleName,
		PricePerDay: resp.PricePerDay,
		TotalPrice:  resp.TotalPrice,
		Accessories: make([]AccessoryResponse, 0, len(resp.Accessories)),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, a := range resp.Accessories {
		out.Accessories = append(out.Accessories, AccessoryResponse{
			AccessoryID:    a.AccessoryID,
			Name:           a.Name,
			PriceAtBooking: a.PriceAtBooking,
		})
	}

	return out
}
