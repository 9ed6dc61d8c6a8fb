package reassign_location

// ReassignLocationRequest HTTP request model
type ReassignLocationRequest struct {
	LocationID int64 `json:"locationId"`
}
