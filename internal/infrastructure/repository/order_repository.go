package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
	"gorm.io/gorm"
)

// orderColumns selects the order row plus the payments aggregate.
const orderColumns = "orders.*, COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.order_id = orders.id), 0) AS amount_paid"

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order, deposit *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return translate(err)
		}
		if deposit == nil || deposit.Amount <= 0 {
			return nil
		}

		deposit.OrderID = order.ID
		deposit.ShopID = order.ShopID
		if err := tx.Create(deposit).Error; err != nil {
			return err
		}
		order.AmountPaid = deposit.Amount
		return nil
	})
}

func (r *orderRepository) withPaid(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Select(orderColumns).
		Scopes(ShopScopeOn(ctx, "orders"))
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.withPaid(ctx).
		Preload("LeadWorker").
		First(&order, "orders.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.withPaid(ctx).
		Preload("LeadWorker").
		Preload("Shop").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC")
		}).
		First(&order, "orders.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).
		Omit("Shop", "LeadWorker", "Payments", "CreatedAt").
		Save(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(ShopScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

// applyFilter narrows query to the requested view and filters.
func applyFilter(query *gorm.DB, f domainRepo.OrderFilter) *gorm.DB {
	switch f.View {
	case domainRepo.OrderViewAll:
	case domainRepo.OrderViewUrgent:
		query = query.Where("orders.status < ? AND orders.due_date IS NOT NULL AND orders.due_date <= ?",
			enum.OrderStatusCollected, f.DueBefore)
	case domainRepo.OrderViewPendingClosure:
		query = query.Where("orders.status = ?", enum.OrderStatusCollected)
	default:
		query = query.Where("orders.status <> ?", enum.OrderStatusClosed)
	}

	if f.Status != nil {
		query = query.Where("orders.status = ?", *f.Status)
	}
	if f.ShopID != nil {
		query = query.Where("orders.shop_id = ?", *f.ShopID)
	}
	if f.WorkerID != nil {
		query = whereWorker(query, *f.WorkerID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("(orders.customer_name ILIKE ? OR orders.customer_phone ILIKE ?)", like, like)
	}
	return query
}

func whereWorker(query *gorm.DB, workerID uuid.UUID) *gorm.DB {
	squad, _ := json.Marshal([]string{workerID.String()})
	return query.Where("(orders.lead_worker_id = ? OR orders.squad @> ?::jsonb)", workerID, string(squad))
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	countQuery := applyFilter(r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(ShopScopeOn(ctx, "orders")), params.OrderFilter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	err := applyFilter(r.withPaid(ctx), params.OrderFilter).
		Preload("LeadWorker").
		Preload("Shop").
		Order(orderSort(params.View)).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&orders).Error

	return orders, total, err
}

func orderSort(view domainRepo.OrderView) string {
	if view == domainRepo.OrderViewUrgent {
		return "orders.due_date ASC, orders.created_at DESC"
	}
	return "orders.created_at DESC"
}

// ListWithCursor returns orders using cursor-based pagination
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()

	query := applyFilter(r.withPaid(ctx), params.OrderFilter)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	order := "orders.created_at DESC, orders.id DESC"
	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionPrev {
			query = query.Where("(orders.created_at, orders.id) > (?, ?)", cursor.CreatedAt, cursor.ID)
			order = "orders.created_at ASC, orders.id ASC"
		} else {
			query = query.Where("(orders.created_at, orders.id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("LeadWorker").
		Order(order).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	if params.Cursor.Direction == pagination.CursorDirectionPrev {
		for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
			orders[i], orders[j] = orders[j], orders[i]
		}
	}
	return orders, nil
}

func (r *orderRepository) ListByWorker(ctx context.Context, workerID uuid.UUID, openOnly bool) ([]entity.Order, error) {
	var orders []entity.Order

	query := whereWorker(r.withPaid(ctx), workerID)
	if openOnly {
		query = query.Where("orders.status <> ?", enum.OrderStatusClosed)
	}

	err := query.Order("orders.due_date ASC NULLS LAST, orders.created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountActiveByWorker(ctx context.Context, workerID uuid.UUID) (int64, error) {
	var count int64
	err := whereWorker(r.db.WithContext(ctx).Model(&entity.Order{}), workerID).
		Where("orders.status <> ?", enum.OrderStatusClosed).
		Count(&count).Error
	return count, err
}
