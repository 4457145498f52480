package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
)

// OrderView selects a preset slice of the order book.
type OrderView string

const (
	OrderViewOpen           OrderView = "open"
	OrderViewAll            OrderView = "all"
	OrderViewUrgent         OrderView = "urgent"
	OrderViewPendingClosure OrderView = "pending-closure"
)

// ParseOrderView falls back to the open view for unknown values.
func ParseOrderView(v string) OrderView {
	switch OrderView(v) {
	case OrderViewAll, OrderViewUrgent, OrderViewPendingClosure:
		return OrderView(v)
	default:
		return OrderViewOpen
	}
}

// OrderRepository defines the interface for order data operations.
// Every order it returns carries AmountPaid, the sum of its payments.
type OrderRepository interface {
	// Create inserts the order and, when deposit is not nil, its first
	// payment in the same transaction.
	Create(ctx context.Context, order *entity.Order, deposit *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithPayments loads the order with its lead worker and payment history.
	GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.Order, error)
	// ListByWorker returns orders the worker leads or is on the squad of.
	ListByWorker(ctx context.Context, workerID uuid.UUID, openOnly bool) ([]entity.Order, error)
	CountActiveByWorker(ctx context.Context, workerID uuid.UUID) (int64, error)
}

// OrderFilter holds the filters shared by both pagination styles.
type OrderFilter struct {
	View     OrderView
	Search   string
	Status   *enum.OrderStatus
	WorkerID *uuid.UUID
	ShopID   *uuid.UUID
	// DueBefore bounds the urgent view.
	DueBefore time.Time
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	OrderFilter
	Pagination *pagination.PaginationParams
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	OrderFilter
	Cursor *pagination.CursorParams
}
