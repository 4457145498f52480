package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
	// GetManagerByShop returns the manager bound to shopID, or nil.
	GetManagerByShop(ctx context.Context, shopID uuid.UUID) (*entity.User, error)
	// DeleteManagersByShop removes the manager profiles bound to shopID.
	DeleteManagersByShop(ctx context.Context, shopID uuid.UUID) (int64, error)
}
