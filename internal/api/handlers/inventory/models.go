package inventory

// CreateCycleRequest HTTP request model
type CreateCycleRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"pricePerDay"`
	LocationID  int64   `json:"locationId"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// UpdateCycleRequest HTTP request model, nil-поля не изменяются
type UpdateCycleRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	PricePerDay *float64 `json:"pricePerDay,omitempty"`
	LocationID  *int64   `json:"locationId,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// SetAvailableRequest HTTP request model
type SetAvailableRequest struct {
	Available bool `json:"available"`
}

// CreateAccessoryRequest HTTP request model
type CreateAccessoryRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// UpdateAccessoryRequest HTTP request model
type UpdateAccessoryRequest struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// CreateLocationRequest HTTP request model
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UpdateLocationRequest HTTP request model
type UpdateLocationRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}
