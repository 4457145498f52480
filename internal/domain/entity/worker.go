package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Worker is a tailor who can lead an order or join its squad.
type Worker struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;index" json:"shop_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ActiveAssignments counts open orders the worker leads or joins.
	ActiveAssignments int `gorm:"->;-:migration" json:"active_assignments"`
}

func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (Worker) TableName() string {
	return "workers"
}
