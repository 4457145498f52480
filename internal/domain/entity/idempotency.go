package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey remembers the response to a money-moving request so a retry
// with the same key replays it instead of charging twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_user_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"`
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpiredAt reports whether the key is stale at now.
func (i *IdempotencyKey) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Matches reports whether a replay targets the same endpoint with the same body.
func (i *IdempotencyKey) Matches(endpoint, requestHash string) bool {
	return i.Endpoint == endpoint && (i.RequestHash == "" || i.RequestHash == requestHash)
}
