package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"gorm.io/gorm"
)

// Order is a garment commissioned by a customer.
// Money paid against it lives in payments; AmountPaid is their sum, read back
// by queries and never stored on the row.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ShopID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerName  string           `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string           `gorm:"size:50;index" json:"customer_phone"`
	GarmentType   string           `gorm:"size:100;not null" json:"garment_type"`
	Price         ledger.Amount    `gorm:"type:bigint;not null;default:0" json:"price"`
	DueDate       *time.Time       `gorm:"type:date;index" json:"due_date,omitempty"`
	Status        enum.OrderStatus `gorm:"not null;default:1;index" json:"status"`
	LeadWorkerID  *uuid.UUID       `gorm:"type:uuid;index" json:"lead_worker_id,omitempty"`
	Squad         WorkerIDs        `gorm:"type:jsonb;not null;default:'[]'" json:"squad"`
	Measurements  Measurements     `gorm:"type:jsonb" json:"measurements"`
	Preferences   string           `gorm:"type:text" json:"preferences,omitempty"`
	CreatedBy     *uuid.UUID       `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	AmountPaid ledger.Amount `gorm:"->;-:migration" json:"amount_paid"`

	// Relationships
	Shop       *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	LeadWorker *Worker   `gorm:"foreignKey:LeadWorkerID" json:"lead_worker,omitempty"`
	Payments   []Payment `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON adds the status label and the derived balance.
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		StatusLabel string        `json:"status_label"`
		Balance     ledger.Amount `json:"balance"`
	}{
		Alias:       Alias(o),
		StatusLabel: o.Status.String(),
		Balance:     o.Price - o.AmountPaid,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == 0 {
		o.Status = enum.OrderStatusAssigned
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Ledger derives the paid total and balance from the persisted payments.
func (o *Order) Ledger() ledger.Result {
	return ledger.Compute(o.Price, o.AmountPaid, 0, o.ID != uuid.Nil)
}

// InvolvesWorker reports whether id leads the order or is on its squad.
func (o *Order) InvolvesWorker(id uuid.UUID) bool {
	if o.LeadWorkerID != nil && *o.LeadWorkerID == id {
		return true
	}
	return o.Squad.Contains(id)
}
