package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
)

// DateRange bounds an analytics query. Zero ends are open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// OrderCounts breaks the order book down by workflow state
type OrderCounts struct {
	Total          int64
	Active         int64
	Completed      int64
	PendingClosure int64
}

// DailyRevenueResult is the money received on one day
type DailyRevenueResult struct {
	Date    time.Time
	Revenue ledger.Amount
}

// ProductMixResult is the order value booked for one garment type
type ProductMixResult struct {
	Garment string
	Count   int64
	Revenue ledger.Amount
}

// ShopTotalsResult is a shop's booked order value and spend
type ShopTotalsResult struct {
	ShopID   uuid.UUID
	ShopName string
	Orders   int64
	Revenue  ledger.Amount
	Expenses ledger.Amount
}

// CategoryTotalResult is the spend in one expense category
type CategoryTotalResult struct {
	Category enum.ExpenseCategory
	Total    ledger.Amount
}

// AnalyticsRepository defines interface for analytics/aggregation queries.
// Results honour the shop scope carried by ctx.
type AnalyticsRepository interface {
	// TotalRevenue sums payments recorded in the range.
	TotalRevenue(ctx context.Context, r DateRange) (ledger.Amount, error)
	TotalExpenses(ctx context.Context, r DateRange) (ledger.Amount, error)
	OrderCounts(ctx context.Context, r DateRange) (OrderCounts, error)
	// DailyRevenue groups payments by the day they were recorded.
	DailyRevenue(ctx context.Context, r DateRange) ([]DailyRevenueResult, error)
	// ProductMix groups order prices by garment type, largest first.
	ProductMix(ctx context.Context, r DateRange) ([]ProductMixResult, error)
	// ShopTotals lists every shop with its order value and expenses.
	ShopTotals(ctx context.Context, r DateRange) ([]ShopTotalsResult, error)
	ExpensesByCategory(ctx context.Context, r DateRange) ([]CategoryTotalResult, error)
}
