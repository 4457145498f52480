package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/tailorshop-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderNotFound is returned by Record when the order is missing or out of scope.
var ErrOrderNotFound = errors.New("order not found")

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Record(ctx context.Context, payment *entity.Payment, guard domainRepo.PaymentGuard) (*entity.Order, error) {
	var order entity.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize payments per order so the guard sees a stable total.
		err := tx.Model(&entity.Order{}).
			Scopes(ShopScope(ctx)).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", payment.OrderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		paid, err := sumByOrder(tx, order.ID)
		if err != nil {
			return err
		}
		order.AmountPaid = paid

		if guard != nil {
			if err := guard(&order); err != nil {
				return err
			}
		}

		payment.ShopID = order.ShopID
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		paid, err = sumByOrder(tx, order.ID)
		if err != nil {
			return err
		}
		order.AmountPaid = paid
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Scopes(ShopScope(ctx)).
		Where("order_id = ?", orderID).
		Order("recorded_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (ledger.Amount, error) {
	return sumByOrder(r.db.WithContext(ctx).Scopes(ShopScope(ctx)), orderID)
}

func sumByOrder(db *gorm.DB, orderID uuid.UUID) (ledger.Amount, error) {
	var total int64
	err := db.Model(&entity.Payment{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return ledger.Amount(total), err
}
