package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a login profile. Owners have no shop; managers belong to exactly one.
type User struct {
	ID         uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	FullName   string        `gorm:"size:255;not null" json:"full_name"`
	Email      string        `gorm:"size:255;unique;not null" json:"email"`
	Password   string        `gorm:"size:255" json:"-"`
	Role       enum.UserRole `gorm:"size:20;not null;default:'manager'" json:"role"`
	ShopID     *uuid.UUID    `gorm:"type:uuid;index" json:"shop_id,omitempty"`
	Provider   string        `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID *string       `gorm:"size:255" json:"-"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Shop *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the profile spans every shop.
func (u *User) IsOwner() bool {
	return u.Role == enum.RoleOwner
}

// ShopIDString returns the shop id or "" for owners.
func (u *User) ShopIDString() string {
	if u.ShopID == nil {
		return ""
	}
	return u.ShopID.String()
}
