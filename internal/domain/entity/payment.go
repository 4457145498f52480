package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"gorm.io/gorm"
)

// Payment is one installment against an order. Payments are append-only.
type Payment struct {
	ID         uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"order_id"`
	ShopID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"shop_id"`
	Amount     ledger.Amount `gorm:"type:bigint;not null;check:amount > 0" json:"amount"`
	RecordedAt time.Time     `gorm:"not null;index" json:"recorded_at"`
	RecordedBy *uuid.UUID    `gorm:"type:uuid" json:"recorded_by,omitempty"`
	Notes      string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now()
	}
	return nil
}

func (Payment) TableName() string {
	return "payments"
}
