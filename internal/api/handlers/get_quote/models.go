package get_quote

import (
	"github.com/cycleaway/booking-service/internal/api/handlers"
	getQuote "github.com/cycleaway/booking-service/internal/usecase/get_quote"
)

// GetQuoteRequest HTTP request model
type GetQuoteRequest struct {
	CycleID      int64   `json:"cycleId"`
	StartTime    string  `json:"startTime"` // RFC 3339 либо "2026-09-05"
	EndTime      string  `json:"endTime"`
	AccessoryIDs []int64 `json:"accessoryIds,omitempty"`
}

// AccessoryQuoteResponse аксессуар в составе расчёта
type AccessoryQuoteResponse struct {
	AccessoryID int64   `json:"accessoryId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	CycleID     int64                    `json:"cycleId"`
	CycleName   string                   `json:"cycleName"`
	Days        int                      `json:"days"`
	PricePerDay float64                  `json:"pricePerDay"`
	CyclePrice  float64                  `json:"cyclePrice"`
	Accessories []AccessoryQuoteResponse `json:"accessories"`
	TotalPrice  float64                  `json:"totalPrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GetQuoteRequest) ToUseCaseRequest() (*getQuote.Request, error) {
	startTime, err := handlers.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := handlers.ParseTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &getQuote.Request{
		CycleID:      r.CycleID,
		StartTime:    startTime,
		EndTime:      endTime,
		AccessoryIDs: r.AccessoryIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	out := &QuoteResponse{
		CycleID:     resp.CycleID,
		CycleName:   resp.CycleName,
		Days:        resp.Days,
		PricePerDay: resp.PricePerDay,
		CyclePrice:  resp.CyclePrice,
		Accessories: make([]AccessoryQuoteResponse, 0, len(resp.Accessories)),
		TotalPrice:  resp.TotalPrice,
	}

	for _, a := range resp.Accessories {
		out.Accessories = append(out.Accessories, AccessoryQuoteResponse{
			AccessoryID: a.AccessoryID,
			Name:        a.Name,
			Price:       a.Price,
		})
	}

	return out
}
