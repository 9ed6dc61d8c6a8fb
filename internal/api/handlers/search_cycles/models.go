package search_cycles

import (
	"time"

	searchCycles "github.com/cycleaway/booking-service/internal/usecase/search_cycles"
)

// CycleResponse свободный велосипед в результатах поиска
type CycleResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"pricePerDay"`
	TotalPrice  float64 `json:"totalPrice"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// SearchCyclesResponse HTTP response model
type SearchCyclesResponse struct {
	LocationID int64           `json:"locationId"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	Cycles     []CycleResponse `json:"cycles"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchCycles.Response) *SearchCyclesResponse {
	out := &SearchCyclesResponse{
		LocationID: resp.LocationID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Cycles:     make([]CycleResponse, 0, len(resp.Cycles)),
	}

	for _, c := range resp.Cycles {
		out.Cycles = append(out.Cycles, CycleResponse{
			ID:          c.ID,
			Name:        c.Name,
			Category:    c.Category,
			PricePerDay: c.PricePerDay,
			TotalPrice:  c.TotalPrice,
			ImageURL:    c.ImageURL,
		})
	}

	return out
}
