package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is one branch of the tailoring business.
type Shop struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	Settings  ShopSettings `gorm:"type:jsonb" json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Filled by list queries
	ManagerName  string `gorm:"->;-:migration" json:"manager_name,omitempty"`
	ManagerEmail string `gorm:"->;-:migration" json:"manager_email,omitempty"`
	WorkerCount  int    `gorm:"->;-:migration" json:"worker_count"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Shop) TableName() string {
	return "shops"
}

// ShopSettings holds per-shop contact details.
type ShopSettings struct {
	Location string `json:"location,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Scan implements sql.Scanner for ShopSettings
func (s *ShopSettings) Scan(value interface{}) error {
	if value == nil {
		*s = ShopSettings{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan ShopSettings: unsupported type")
	}
	if len(data) == 0 {
		*s = ShopSettings{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Value implements driver.Valuer for ShopSettings
func (s ShopSettings) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
