package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
)

// ShopRepository defines the interface for shop data operations
type ShopRepository interface {
	// Create inserts the shop and its manager profile in one transaction.
	Create(ctx context.Context, shop *entity.Shop, manager *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	// List returns every shop with its manager and worker count.
	List(ctx context.Context) ([]entity.Shop, error)
	// DeleteCascade removes the shop with its payments, orders, expenses,
	// workers and manager profiles in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
