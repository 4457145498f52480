package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"gorm.io/gorm"
)

// Expense is money spent by a shop.
type Expense struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ShopID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"shop_id"`
	ItemName   string               `gorm:"size:255;not null" json:"item_name"`
	Amount     ledger.Amount        `gorm:"type:bigint;not null" json:"amount"`
	Category   enum.ExpenseCategory `gorm:"size:50;not null;index" json:"category"`
	Notes      string               `gorm:"type:text" json:"notes,omitempty"`
	IncurredAt time.Time            `gorm:"not null;index" json:"incurred_at"`
	RecordedBy *uuid.UUID           `gorm:"type:uuid" json:"recorded_by,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`

	Shop     *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	Recorder *User `gorm:"foreignKey:RecordedBy" json:"recorder,omitempty"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.IncurredAt.IsZero() {
		e.IncurredAt = time.Now()
	}
	return nil
}

func (Expense) TableName() string {
	return "expenses"
}
