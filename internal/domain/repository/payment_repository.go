package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

// PaymentGuard inspects the locked order before a payment is inserted.
// Returning an error aborts the insert.
type PaymentGuard func(order *entity.Order) error

// PaymentRepository defines the interface for payment data operations.
// Payments are append-only.
type PaymentRepository interface {
	// Record locks the payment's order, runs guard, inserts the payment and
	// re-reads the payments total, all in one transaction. The returned order
	// carries the new total.
	Record(ctx context.Context, payment *entity.Payment, guard PaymentGuard) (*entity.Order, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
	SumByOrder(ctx context.Context, orderID uuid.UUID) (ledger.Amount, error)
}
