package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/garment"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
	"go.uber.org/zap"
)

// urgentWindow is how far ahead the urgent view looks for due dates.
const urgentWindow = 48 * time.Hour

// OrderService handles order-related operations
type OrderService struct {
	orderRepo  repository.OrderRepository
	workerRepo repository.WorkerRepository
	catalog    *garment.Catalog
	money      *ledger.Formatter
	log        *zap.Logger
	now        func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	workerRepo repository.WorkerRepository,
	catalog *garment.Catalog,
	money *ledger.Formatter,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		workerRepo: workerRepo,
		catalog:    catalog,
		money:      money,
		log:        log,
		now:        time.Now,
	}
}

// OrderDetail is an order with its crew names and ledger.
type OrderDetail struct {
	Order          *entity.Order `json:"order"`
	LeadWorkerName string        `json:"lead_worker_name,omitempty"`
	SquadNames     []string      `json:"squad_names"`
	Ledger         ledger.Result `json:"ledger"`
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	ShopID        *uuid.UUID
	CustomerName  string
	CustomerPhone string
	GarmentType   string
	Price         ledger.Amount
	Deposit       ledger.Amount
	DueDate       *time.Time
	LeadWorkerID  *uuid.UUID
	Squad         []uuid.UUID
	Measurements  map[string]map[string]float64
	Preferences   string
}

// CreateOrder books a new order. A deposit is recorded as its first payment
// in the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*OrderDetail, error) {
	shopID, err := resolveShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "Customer name is required"})
	}
	garmentType, ok := s.catalog.Lookup(input.GarmentType)
	if !ok {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "garment_type", Message: "Unknown garment type"})
	} else if err := s.catalog.Validate(garmentType.Name, input.Measurements); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "measurements", Message: err.Error()})
	}
	if input.Price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price must not be negative"})
	}
	if input.Deposit < 0 || input.Deposit > input.Price {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "deposit", Message: "Deposit must be between 0 and the price"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	squad := entity.WorkerIDs(input.Squad).Dedupe()
	if err := s.validateCrew(ctx, shopID, input.LeadWorkerID, squad); err != nil {
		return nil, err
	}

	order := &entity.Order{
		ShopID:        shopID,
		CustomerName:  customer,
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		GarmentType:   garmentType.Name,
		Price:         input.Price,
		DueDate:       input.DueDate,
		Status:        enum.OrderStatusAssigned,
		LeadWorkerID:  input.LeadWorkerID,
		Squad:         squad,
		Measurements:  entity.Measurements(input.Measurements).Prune(),
		Preferences:   strings.TrimSpace(input.Preferences),
		CreatedBy:     callerID(ctx),
	}

	var deposit *entity.Payment
	if input.Deposit > 0 {
		deposit = &entity.Payment{
			Amount:     input.Deposit,
			RecordedBy: callerID(ctx),
			Notes:      "Deposit",
		}
	}

	if err := s.orderRepo.Create(ctx, order, deposit); err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("shop_id", shopID.String()),
		zap.Int64("deposit", int64(input.Deposit)),
	)
	return s.GetOrder(ctx, order.ID)
}

// validateCrew checks that the lead and every squad member work in shopID.
func (s *OrderService) validateCrew(ctx context.Context, shopID uuid.UUID, lead *uuid.UUID, squad entity.WorkerIDs) error {
	if lead != nil {
		if err := s.checkWorker(ctx, shopID, *lead, "lead_worker_id"); err != nil {
			return err
		}
	}
	for _, id := range squad {
		if err := s.checkWorker(ctx, shopID, id, "squad"); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) checkWorker(ctx context.Context, shopID, id uuid.UUID, field string) error {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if worker == nil || worker.ShopID != shopID {
		return apperror.NewFieldError(field, fmt.Sprintf("Worker %s does not work in this shop", id))
	}
	return nil
}

// GetOrder returns an order with its payments, crew names and ledger
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	order, err := s.orderRepo.GetWithPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.detail(ctx, order)
}

func (s *OrderService) detail(ctx context.Context, order *entity.Order) (*OrderDetail, error) {
	ids := make([]uuid.UUID, 0, len(order.Squad)+1)
	if order.LeadWorkerID != nil {
		ids = append(ids, *order.LeadWorkerID)
	}
	ids = append(ids, order.Squad...)

	names, err := s.workerRepo.Names(ctx, ids)
	if err != nil {
		return nil, err
	}

	d := &OrderDetail{
		Order:      order,
		SquadNames: make([]string, 0, len(order.Squad)),
		Ledger:     order.Ledger(),
	}
	if order.LeadWorkerID != nil {
		d.LeadWorkerName = names[*order.LeadWorkerID]
	}
	for _, id := range order.Squad {
		if name, ok := names[id]; ok {
			d.SquadNames = append(d.SquadNames, name)
		}
	}
	return d, nil
}

// prepareFilter fills the urgent window and drops the shop filter for managers.
func (s *OrderService) prepareFilter(ctx context.Context, f *repository.OrderFilter) {
	f.View = repository.ParseOrderView(string(f.View))
	f.ShopID = filterShop(ctx, f.ShopID)
	f.Search = strings.TrimSpace(f.Search)
	if f.View == repository.OrderViewUrgent {
		f.DueBefore = s.now().Add(urgentWindow)
	}
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	s.prepareFilter(ctx, &params.OrderFilter)
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	s.prepareFilter(ctx, &params.OrderFilter)
	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()
	if _, err := params.Cursor.DecodeCursor(); err != nil {
		return nil, apperror.NewFieldError("cursor", err.Error())
	}

	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.Order) string { return o.ID.String() },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = params.Cursor.Cursor != ""

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateOrderStatus moves an order to any status. Transitions are not
// restricted; closing with a balance goes through FinalizeOrder.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) (*OrderDetail, error) {
	if !status.Valid() {
		return nil, apperror.NewFieldError("status", "Status must be between 1 and 6")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// UpdateOrderInput represents an edit of an order. Nil fields are left as is.
type UpdateOrderInput struct {
	CustomerName  *string
	CustomerPhone *string
	GarmentType   *string
	Price         *ledger.Amount
	DueDate       *time.Time
	ClearDueDate  bool
	// LeadWorkerID set to uuid.Nil removes the lead.
	LeadWorkerID *uuid.UUID
	Squad        *[]uuid.UUID
	Measurements map[string]map[string]float64
	Preferences  *string
	Status       *enum.OrderStatus
}

// UpdateOrder applies an edit to an order
func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, apperror.NewFieldError("customer_name", "Customer name is required")
		}
		order.CustomerName = name
	}
	if input.CustomerPhone != nil {
		order.CustomerPhone = strings.TrimSpace(*input.CustomerPhone)
	}
	if input.GarmentType != nil {
		t, ok := s.catalog.Lookup(*input.GarmentType)
		if !ok {
			return nil, apperror.NewFieldError("garment_type", "Unknown garment type")
		}
		order.GarmentType = t.Name
	}
	if input.Measurements != nil {
		order.Measurements = entity.Measurements(input.Measurements).Prune()
	}
	if input.GarmentType != nil || input.Measurements != nil {
		if err := s.catalog.Validate(order.GarmentType, order.Measurements); err != nil {
			return nil, apperror.NewFieldError("measurements", err.Error())
		}
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewFieldError("price", "Price must not be negative")
		}
		order.Price = *input.Price
	}
	if input.ClearDueDate {
		order.DueDate = nil
	} else if input.DueDate != nil {
		order.DueDate = input.DueDate
	}
	if input.LeadWorkerID != nil {
		if *input.LeadWorkerID == uuid.Nil {
			order.LeadWorkerID = nil
		} else {
			lead := *input.LeadWorkerID
			order.LeadWorkerID = &lead
		}
	}
	if input.Squad != nil {
		order.Squad = entity.WorkerIDs(*input.Squad).Dedupe()
	}
	if input.LeadWorkerID != nil || input.Squad != nil {
		if err := s.validateCrew(ctx, order.ShopID, order.LeadWorkerID, order.Squad); err != nil {
			return nil, err
		}
	}
	if input.Preferences != nil {
		order.Preferences = strings.TrimSpace(*input.Preferences)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperror.NewFieldError("status", "Status must be between 1 and 6")
		}
		order.Status = *input.Status
	}

	// Relations loaded by GetByID must not be written back.
	order.LeadWorker = nil
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// FinalizeOrder closes an order. While money is owed the caller must confirm
// closing with debt, otherwise a conflict is returned.
func (s *OrderService) FinalizeOrder(ctx context.Context, id uuid.UUID, confirmDebt bool) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	res := order.Ledger()
	if !res.PaidInFull() && !confirmDebt {
		return nil, apperror.NewConflictError(fmt.Sprintf(
			"Order has an outstanding balance of %s. Confirm to close it with debt.",
			s.money.Format(res.Balance),
		))
	}

	if order.Status != enum.OrderStatusClosed {
		if err := s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusClosed); err != nil {
			return nil, err
		}
	}
	if !res.PaidInFull() {
		s.log.Warn("order closed with debt",
			zap.String("order_id", id.String()),
			zap.Int64("balance", int64(res.Balance)),
		)
	}
	return s.GetOrder(ctx, id)
}
