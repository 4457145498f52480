package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/receipt"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"go.uber.org/zap"
)

// PaymentService records installments against orders
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	receipts    *receipt.Renderer
	log         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	receipts *receipt.Renderer,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		receipts:    receipts,
		log:         log,
	}
}

// QuickPayInput represents a payment taken at the counter
type QuickPayInput struct {
	OrderID uuid.UUID
	Amount  ledger.Amount
	Notes   string
}

// QuickPayOutput is the recorded payment with the order's new ledger and the
// receipt to hand to the customer.
type QuickPayOutput struct {
	Payment *entity.Payment `json:"payment"`
	Order   *entity.Order   `json:"order"`
	Ledger  ledger.Result   `json:"ledger"`
	Receipt string          `json:"receipt"`
	Share   receipt.Links   `json:"share"`
}

// QuickPay records a payment of at most the outstanding balance.
func (s *PaymentService) QuickPay(ctx context.Context, input *QuickPayInput) (*QuickPayOutput, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewFieldError("amount", "Amount must be greater than zero")
	}

	payment := &entity.Payment{
		OrderID:    input.OrderID,
		Amount:     input.Amount,
		RecordedBy: callerID(ctx),
		Notes:      strings.TrimSpace(input.Notes),
	}

	order, err := s.paymentRepo.Record(ctx, payment, s.balanceGuard(input.Amount))
	if errors.Is(err, infraRepo.ErrOrderNotFound) {
		return nil, apperror.NewNotFoundError("Order")
	}
	if err != nil {
		return nil, err
	}

	res := ledger.Compute(order.Price, order.AmountPaid, input.Amount, true)
	text := s.receipts.RenderText(receiptOrder(order), res, input.Amount)

	s.log.Info("payment recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.Int64("amount", int64(payment.Amount)),
		zap.Int64("balance", int64(res.Balance)),
	)

	return &QuickPayOutput{
		Payment: payment,
		Order:   order,
		Ledger:  res,
		Receipt: text,
		Share:   receipt.ShareLinks(text, order.CustomerPhone),
	}, nil
}

// balanceGuard runs on the locked order so concurrent payments cannot
// overshoot the price together.
func (s *PaymentService) balanceGuard(amount ledger.Amount) repository.PaymentGuard {
	return func(order *entity.Order) error {
		res := order.Ledger()
		if res.PaidInFull() {
			return apperror.NewConflictError("Order is already paid in full")
		}
		if amount > res.Balance {
			return apperror.NewFieldError("amount",
				fmt.Sprintf("Amount exceeds the outstanding balance of %s", s.receipts.Formatter().Format(res.Balance)))
		}
		return nil
	}
}

// ListPayments returns the payment history of an order, oldest first
func (s *PaymentService) ListPayments(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.ListByOrder(ctx, orderID)
}

// receiptOrder extracts the fields printed on receipts.
func receiptOrder(o *entity.Order) receipt.Order {
	return receipt.Order{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		GarmentType:   o.GarmentType,
	}
}
