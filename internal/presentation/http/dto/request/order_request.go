package request

import (
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
)

// CreateOrderRequest represents a create order request.
// DueDate is a calendar date (2006-01-02).
type CreateOrderRequest struct {
	ShopID        string              `json:"shop_id" binding:"omitempty,uuid"`
	CustomerName  string              `json:"customer_name" binding:"required,max=255"`
	CustomerPhone string              `json:"customer_phone" binding:"max=50"`
	GarmentType   string              `json:"garment_type" binding:"required"`
	Price         Money               `json:"price"`
	Deposit       Money               `json:"deposit"`
	DueDate       string              `json:"due_date"`
	LeadWorkerID  string              `json:"lead_worker_id" binding:"omitempty,uuid"`
	Squad         entity.WorkerIDs    `json:"squad"`
	Measurements  entity.Measurements `json:"measurements"`
	Preferences   string              `json:"preferences"`
}

// UpdateOrderRequest represents an order edit. Absent fields are left as is;
// an empty due_date or lead_worker_id clears it.
type UpdateOrderRequest struct {
	CustomerName  *string             `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone *string             `json:"customer_phone" binding:"omitempty,max=50"`
	GarmentType   *string             `json:"garment_type"`
	Price         *Money              `json:"price"`
	DueDate       *string             `json:"due_date"`
	LeadWorkerID  *string             `json:"lead_worker_id"`
	Squad         *entity.WorkerIDs   `json:"squad"`
	Measurements  entity.Measurements `json:"measurements"`
	Preferences   *string             `json:"preferences"`
	Status        *enum.OrderStatus   `json:"status"`
}

// UpdateOrderStatusRequest accepts a status code (1-6) or its label
type UpdateOrderStatusRequest struct {
	Status enum.OrderStatus `json:"status" binding:"required"`
}

// FinalizeOrderRequest closes an order. ConfirmDebt must be set while money is owed.
type FinalizeOrderRequest struct {
	ConfirmDebt bool `json:"confirm_debt"`
}

// QuickPayRequest represents a payment taken at the counter
type QuickPayRequest struct {
	Amount Money  `json:"amount"`
	Notes  string `json:"notes" binding:"max=500"`
}
