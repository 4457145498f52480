package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/tailorshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *gorm.DB) domainRepo.ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop, manager *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return translate(err)
		}
		if manager == nil {
			return nil
		}
		manager.ShopID = &shop.ID
		return translate(tx.Create(manager).Error)
	})
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	var shop entity.Shop
	err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *shopRepository) List(ctx context.Context) ([]entity.Shop, error) {
	var shops []entity.Shop
	err := r.db.WithContext(ctx).
		Model(&entity.Shop{}).
		Select(`shops.*,
			COALESCE(m.full_name, '') AS manager_name,
			COALESCE(m.email, '') AS manager_email,
			(SELECT COUNT(*) FROM workers w WHERE w.shop_id = shops.id) AS worker_count`).
		Joins("LEFT JOIN users m ON m.shop_id = shops.id AND m.role = ?", enum.RoleManager).
		Order("shops.name ASC").
		Find(&shops).Error
	return shops, err
}

func (r *shopRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			where string
		}{
			{&entity.Payment{}, "order_id IN (SELECT id FROM orders WHERE shop_id = ?)"},
			{&entity.Payment{}, "shop_id = ?"},
			{&entity.Order{}, "shop_id = ?"},
			{&entity.Expense{}, "shop_id = ?"},
			{&entity.Worker{}, "shop_id = ?"},
			{&entity.User{}, "shop_id = ?"},
		}
		for _, step := range steps {
			if err := tx.Where(step.where, id).Delete(step.model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&entity.Shop{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
