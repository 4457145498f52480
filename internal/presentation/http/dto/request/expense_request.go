package request

// CreateExpenseRequest represents a create expense request
type CreateExpenseRequest struct {
	ShopID     string `json:"shop_id" binding:"omitempty,uuid"`
	ItemName   string `json:"item_name" binding:"max=255"`
	Amount     Money  `json:"amount"`
	Category   string `json:"category"`
	Notes      string `json:"notes"`
	IncurredAt string `json:"incurred_at"`
}
