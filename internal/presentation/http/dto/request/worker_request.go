package request

// CreateWorkerRequest represents a create worker request.
// ShopID is only read for owners.
type CreateWorkerRequest struct {
	ShopID string `json:"shop_id" binding:"omitempty,uuid"`
	Name   string `json:"name" binding:"required,max=255"`
	Phone  string `json:"phone" binding:"max=50"`
}

// UpdateWorkerRequest represents an update worker request
type UpdateWorkerRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}
