package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// Hand-written in-memory repositories. They ignore shop scoping; the scope
// itself is covered by the gorm repository tests.

func ownerCtx() context.Context {
	ctx := infraRepo.WithUser(context.Background(), uuid.New())
	return infraRepo.WithSkipShopScope(ctx, true)
}

func managerCtx(shopID uuid.UUID) context.Context {
	ctx := infraRepo.WithUser(context.Background(), uuid.New())
	return infraRepo.WithShop(ctx, shopID)
}

// ---- users ----

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return infraRepo.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByProviderID(_ context.Context, provider, providerID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hashed string) error {
	r.users[id].Password = hashed
	return nil
}

func (r *stubUserRepo) GetManagerByShop(_ context.Context, shopID uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.Role == enum.RoleManager && u.ShopID != nil && *u.ShopID == shopID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) DeleteManagersByShop(_ context.Context, shopID uuid.UUID) (int64, error) {
	var n int64
	for id, u := range r.users {
		if u.Role == enum.RoleManager && u.ShopID != nil && *u.ShopID == shopID {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

// ---- shops ----

type stubShopRepo struct {
	shops   map[uuid.UUID]*entity.Shop
	users   *stubUserRepo
	deleted []uuid.UUID
}

func newStubShopRepo(users *stubUserRepo, shops ...*entity.Shop) *stubShopRepo {
	r := &stubShopRepo{shops: map[uuid.UUID]*entity.Shop{}, users: users}
	for _, s := range shops {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.shops[s.ID] = s
	}
	return r
}

func (r *stubShopRepo) Create(ctx context.Context, shop *entity.Shop, manager *entity.User) error {
	if manager != nil {
		if existing, _ := r.users.GetByEmail(ctx, manager.Email); existing != nil {
			return infraRepo.ErrDuplicate
		}
	}
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	r.shops[shop.ID] = shop
	if manager != nil {
		manager.ShopID = &shop.ID
		return r.users.Create(ctx, manager)
	}
	return nil
}

func (r *stubShopRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *stubShopRepo) Update(_ context.Context, shop *entity.Shop) error {
	cp := *shop
	r.shops[shop.ID] = &cp
	return nil
}

func (r *stubShopRepo) List(context.Context) ([]entity.Shop, error) {
	out := make([]entity.Shop, 0, len(r.shops))
	for _, s := range r.shops {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubShopRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	delete(r.shops, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// ---- workers ----

type stubWorkerRepo struct {
	workers   map[uuid.UUID]*entity.Worker
	deleteErr error
}

func newStubWorkerRepo(workers ...*entity.Worker) *stubWorkerRepo {
	r := &stubWorkerRepo{workers: map[uuid.UUID]*entity.Worker{}}
	for _, w := range workers {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		r.workers[w.ID] = w
	}
	return r
}

func (r *stubWorkerRepo) Create(_ context.Context, w *entity.Worker) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.workers[w.ID] = w
	return nil
}

func (r *stubWorkerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *stubWorkerRepo) Update(_ context.Context, w *entity.Worker) error {
	cp := *w
	r.workers[w.ID] = &cp
	return nil
}

func (r *stubWorkerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.workers, id)
	return nil
}

func (r *stubWorkerRepo) List(_ context.Context, shopID *uuid.UUID) ([]entity.Worker, error) {
	var out []entity.Worker
	for _, w := range r.workers {
		if shopID == nil || w.ShopID == *shopID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *stubWorkerRepo) Names(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if w, ok := r.workers[id]; ok {
			out[id] = w.Name
		}
	}
	return out, nil
}

// ---- orders and payments ----

// orderBook backs both the order and the payment stubs.
type orderBook struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*entity.Order
	payments []entity.Payment
}

func newOrderBook(orders ...*entity.Order) *orderBook {
	b := &orderBook{orders: map[uuid.UUID]*entity.Order{}}
	for _, o := range orders {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		b.orders[o.ID] = o
	}
	return b
}

func (b *orderBook) paid(orderID uuid.UUID) ledger.Amount {
	var total ledger.Amount
	for _, p := range b.payments {
		if p.OrderID == orderID {
			total += p.Amount
		}
	}
	return total
}

func (b *orderBook) load(id uuid.UUID) *entity.Order {
	o, ok := b.orders[id]
	if !ok {
		return nil
	}
	cp := *o
	cp.AmountPaid = b.paid(id)
	return &cp
}

type stubOrderRepo struct {
	book       *orderBook
	lastFilter repository.OrderFilter
}

func (r *stubOrderRepo) Create(_ context.Context, order *entity.Order, deposit *entity.Payment) error {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	r.book.orders[order.ID] = order
	if deposit != nil {
		deposit.ID = uuid.New()
		deposit.OrderID = order.ID
		deposit.ShopID = order.ShopID
		r.book.payments = append(r.book.payments, *deposit)
		order.AmountPaid = deposit.Amount
	}
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	return r.book.load(id), nil
}

func (r *stubOrderRepo) GetWithPayments(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	o := r.book.load(id)
	if o == nil {
		return nil, nil
	}
	for _, p := range r.book.payments {
		if p.OrderID == id {
			o.Payments = append(o.Payments, p)
		}
	}
	return o, nil
}

func (r *stubOrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	cp := *order
	r.book.orders[order.ID] = &cp
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	if o, ok := r.book.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *stubOrderRepo) all() []entity.Order {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	out := make([]entity.Order, 0, len(r.book.orders))
	for id := range r.book.orders {
		out = append(out, *r.book.load(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubOrderRepo) List(_ context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.lastFilter = params.OrderFilter
	out := r.all()
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListWithCursor(_ context.Context, params *repository.OrderCursorFilterParams) ([]entity.Order, error) {
	r.lastFilter = params.OrderFilter
	out := r.all()
	if len(out) > params.Cursor.Limit+1 {
		out = out[:params.Cursor.Limit+1]
	}
	return out, nil
}

func (r *stubOrderRepo) ListByWorker(_ context.Context, workerID uuid.UUID, openOnly bool) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range r.all() {
		if o.InvolvesWorker(workerID) && (!openOnly || o.Status.Open()) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) CountActiveByWorker(ctx context.Context, workerID uuid.UUID) (int64, error) {
	orders, _ := r.ListByWorker(ctx, workerID, true)
	return int64(len(orders)), nil
}

type stubPaymentRepo struct {
	book *orderBook
}

func (r *stubPaymentRepo) Record(_ context.Context, payment *entity.Payment, guard repository.PaymentGuard) (*entity.Order, error) {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()

	order := r.book.load(payment.OrderID)
	if order == nil {
		return nil, infraRepo.ErrOrderNotFound
	}
	if guard != nil {
		if err := guard(order); err != nil {
			return nil, err
		}
	}
	payment.ID = uuid.New()
	payment.ShopID = order.ShopID
	if payment.RecordedAt.IsZero() {
		payment.RecordedAt = time.Now()
	}
	r.book.payments = append(r.book.payments, *payment)
	order.AmountPaid = r.book.paid(order.ID)
	return order, nil
}

func (r *stubPaymentRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.book.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SumByOrder(_ context.Context, orderID uuid.UUID) (ledger.Amount, error) {
	r.book.mu.Lock()
	defer r.book.mu.Unlock()
	return r.book.paid(orderID), nil
}

// ---- expenses ----

type stubExpenseRepo struct {
	expenses   map[uuid.UUID]*entity.Expense
	lastParams *repository.ExpenseFilterParams
}

func newStubExpenseRepo(expenses ...*entity.Expense) *stubExpenseRepo {
	r := &stubExpenseRepo{expenses: map[uuid.UUID]*entity.Expense{}}
	for _, e := range expenses {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		r.expenses[e.ID] = e
	}
	return r
}

func (r *stubExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *stubExpenseRepo) List(_ context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	r.lastParams = params
	out := make([]entity.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IncurredAt.After(out[j].IncurredAt) })
	return out, int64(len(out)), nil
}

// ---- analytics ----

type stubAnalyticsRepo struct {
	revenue    ledger.Amount
	expenses   ledger.Amount
	counts     repository.OrderCounts
	daily      []repository.DailyRevenueResult
	mix        []repository.ProductMixResult
	shops      []repository.ShopTotalsResult
	categories []repository.CategoryTotalResult
	err        error
}

func (r *stubAnalyticsRepo) TotalRevenue(context.Context, repository.DateRange) (ledger.Amount, error) {
	return r.revenue, r.err
}

func (r *stubAnalyticsRepo) TotalExpenses(context.Context, repository.DateRange) (ledger.Amount, error) {
	return r.expenses, r.err
}

func (r *stubAnalyticsRepo) OrderCounts(context.Context, repository.DateRange) (repository.OrderCounts, error) {
	return r.counts, r.err
}

func (r *stubAnalyticsRepo) DailyRevenue(context.Context, repository.DateRange) ([]repository.DailyRevenueResult, error) {
	return r.daily, r.err
}

func (r *stubAnalyticsRepo) ProductMix(context.Context, repository.DateRange) ([]repository.ProductMixResult, error) {
	return r.mix, r.err
}

func (r *stubAnalyticsRepo) ShopTotals(context.Context, repository.DateRange) ([]repository.ShopTotalsResult, error) {
	return r.shops, r.err
}

func (r *stubAnalyticsRepo) ExpensesByCategory(context.Context, repository.DateRange) ([]repository.CategoryTotalResult, error) {
	return r.categories, r.err
}

// ---- idempotency ----

type stubIdempotencyRepo struct {
	mu      sync.Mutex
	calls   int
	deleted int64
	err     error
}

func (r *stubIdempotencyRepo) GetByKey(context.Context, string, uuid.UUID) (*entity.IdempotencyKey, error) {
	return nil, nil
}

func (r *stubIdempotencyRepo) Create(context.Context, *entity.IdempotencyKey) error {
	return nil
}

func (r *stubIdempotencyRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.deleted, r.err
}

func (r *stubIdempotencyRepo) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// appErrorCode returns the HTTP status carried by err, or 0 for nil.
func appErrorCode(err error) int {
	if err == nil {
		return 0
	}
	return apperror.GetAppError(err).Code
}
