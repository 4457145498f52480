package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

const (
	topProducts      = 5
	topShops         = 10
	topCategories    = 8
	auditLogSize     = 100
	healthyMargin    = 20.0
	healthyVerdict   = "Healthy performance."
	unhealthyVerdict = "Needs optimization."
)

// DashboardService computes the financial dashboards
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	expenseRepo   repository.ExpenseRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, expenseRepo repository.ExpenseRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		expenseRepo:   expenseRepo,
	}
}

// Metrics is the headline shown to managers and owners
type Metrics struct {
	TotalRevenue   ledger.Amount `json:"total_revenue"`
	ActiveOrders   int64         `json:"active_orders"`
	PendingClosure int64         `json:"pending_closure"`
}

// GetMetrics returns all-time revenue and workload for the caller's scope
func (s *DashboardService) GetMetrics(ctx context.Context) (*Metrics, error) {
	var (
		revenue ledger.Amount
		counts  repository.OrderCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, err = s.analyticsRepo.TotalRevenue(gctx, repository.DateRange{})
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.analyticsRepo.OrderCounts(gctx, repository.DateRange{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Metrics{
		TotalRevenue:   revenue,
		ActiveOrders:   counts.Active,
		PendingClosure: counts.PendingClosure,
	}, nil
}

// KPIs are the headline figures of the overview
type KPIs struct {
	TotalRevenue      ledger.Amount `json:"total_revenue"`
	TotalExpenses     ledger.Amount `json:"total_expenses"`
	NetProfit         ledger.Amount `json:"net_profit"`
	TotalOrders       int64         `json:"total_orders"`
	ActiveOrders      int64         `json:"active_orders"`
	CompletedOrders   int64         `json:"completed_orders"`
	AverageOrderValue ledger.Amount `json:"average_order_value"`
}

// RevenuePoint is the money received on one day
type RevenuePoint struct {
	Date    string        `json:"date"`
	Revenue ledger.Amount `json:"revenue"`
}

// ProductShare is one garment type's slice of booked order value
type ProductShare struct {
	Garment    string        `json:"garment"`
	Count      int64         `json:"count"`
	Revenue    ledger.Amount `json:"revenue"`
	Percentage float64       `json:"percentage"`
}

// ShopPerformance compares one shop's booked order value with its spend
type ShopPerformance struct {
	ShopID     uuid.UUID     `json:"shop_id"`
	ShopName   string        `json:"shop_name"`
	Orders     int64         `json:"orders"`
	Revenue    ledger.Amount `json:"revenue"`
	Expenses   ledger.Amount `json:"expenses"`
	Profit     ledger.Amount `json:"profit"`
	Efficiency float64       `json:"efficiency"`
}

// CategorySpend is the spend in one expense category
type CategorySpend struct {
	Category enum.ExpenseCategory `json:"category"`
	Total    ledger.Amount        `json:"total"`
}

// Insights are the derived ratios shown under the charts
type Insights struct {
	NetProfit       ledger.Amount `json:"net_profit"`
	ProfitMargin    float64       `json:"profit_margin"`
	ExpenseRatio    float64       `json:"expense_ratio"`
	TopProduct      string        `json:"top_product,omitempty"`
	TopProductShare float64       `json:"top_product_share"`
	Verdict         string        `json:"verdict"`
	TotalOrders     int64         `json:"total_orders"`
	ActiveOrders    int64         `json:"active_orders"`
}

// Overview is the owner's financial dashboard for a date range
type Overview struct {
	From               *time.Time        `json:"from,omitempty"`
	To                 *time.Time        `json:"to,omitempty"`
	KPIs               KPIs              `json:"kpis"`
	DailyRevenue       []RevenuePoint    `json:"daily_revenue"`
	ProductMix         []ProductShare    `json:"product_mix"`
	ShopPerformance    []ShopPerformance `json:"shop_performance"`
	Rankings           []ShopPerformance `json:"rankings"`
	ExpensesByCategory []CategorySpend   `json:"expenses_by_category"`
	Insights           Insights          `json:"insights"`
}

// GetOverview builds the financial dashboard for rng
func (s *DashboardService) GetOverview(ctx context.Context, rng repository.DateRange) (*Overview, error) {
	var (
		revenue, expenses ledger.Amount
		counts            repository.OrderCounts
		daily             []repository.DailyRevenueResult
		mix               []repository.ProductMixResult
		shops             []repository.ShopTotalsResult
		categories        []repository.CategoryTotalResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { revenue, err = s.analyticsRepo.TotalRevenue(gctx, rng); return })
	g.Go(func() (err error) { expenses, err = s.analyticsRepo.TotalExpenses(gctx, rng); return })
	g.Go(func() (err error) { counts, err = s.analyticsRepo.OrderCounts(gctx, rng); return })
	g.Go(func() (err error) { daily, err = s.analyticsRepo.DailyRevenue(gctx, rng); return })
	g.Go(func() (err error) { mix, err = s.analyticsRepo.ProductMix(gctx, rng); return })
	g.Go(func() (err error) { shops, err = s.analyticsRepo.ShopTotals(gctx, rng); return })
	g.Go(func() (err error) { categories, err = s.analyticsRepo.ExpensesByCategory(gctx, rng); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o := &Overview{
		KPIs:               buildKPIs(revenue, expenses, counts),
		DailyRevenue:       buildDaily(daily),
		ProductMix:         buildProductMix(mix),
		ExpensesByCategory: buildCategories(categories),
	}
	if !rng.From.IsZero() {
		o.From = &rng.From
	}
	if !rng.To.IsZero() {
		o.To = &rng.To
	}
	o.ShopPerformance, o.Rankings = buildShopPerformance(shops)
	o.Insights = buildInsights(o.KPIs, mix)
	return o, nil
}

func buildKPIs(revenue, expenses ledger.Amount, counts repository.OrderCounts) KPIs {
	k := KPIs{
		TotalRevenue:    revenue,
		TotalExpenses:   expenses,
		NetProfit:       revenue - expenses,
		TotalOrders:     counts.Total,
		ActiveOrders:    counts.Active,
		CompletedOrders: counts.Completed,
	}
	if counts.Total > 0 {
		k.AverageOrderValue = ledger.Amount(math.Round(float64(revenue) / float64(counts.Total)))
	}
	return k
}

func buildDaily(rows []repository.DailyRevenueResult) []RevenuePoint {
	points := make([]RevenuePoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, RevenuePoint{Date: r.Date.Format("2006-01-02"), Revenue: r.Revenue})
	}
	return points
}

// buildProductMix keeps the largest garment types. Percentages are shares of
// the value booked across every garment type, not just the ones kept.
func buildProductMix(rows []repository.ProductMixResult) []ProductShare {
	var total ledger.Amount
	for _, r := range rows {
		total += r.Revenue
	}

	sorted := make([]repository.ProductMixResult, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Revenue > sorted[j].Revenue })
	if len(sorted) > topProducts {
		sorted = sorted[:topProducts]
	}

	out := make([]ProductShare, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, ProductShare{
			Garment:    r.Garment,
			Count:      r.Count,
			Revenue:    r.Revenue,
			Percentage: percent(r.Revenue, total),
		})
	}
	return out
}

// buildShopPerformance returns the top shops by revenue and the same shops
// ranked by efficiency.
func buildShopPerformance(rows []repository.ShopTotalsResult) ([]ShopPerformance, []ShopPerformance) {
	perf := make([]ShopPerformance, 0, len(rows))
	for _, r := range rows {
		perf = append(perf, ShopPerformance{
			ShopID:     r.ShopID,
			ShopName:   r.ShopName,
			Orders:     r.Orders,
			Revenue:    r.Revenue,
			Expenses:   r.Expenses,
			Profit:     r.Revenue - r.Expenses,
			Efficiency: percent(r.Revenue-r.Expenses, r.Revenue),
		})
	}

	sort.SliceStable(perf, func(i, j int) bool { return perf[i].Revenue > perf[j].Revenue })
	if len(perf) > topShops {
		perf = perf[:topShops]
	}

	rankings := make([]ShopPerformance, len(perf))
	copy(rankings, perf)
	sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].Efficiency > rankings[j].Efficiency })
	return perf, rankings
}

func buildCategories(rows []repository.CategoryTotalResult) []CategorySpend {
	out := make([]CategorySpend, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategorySpend{Category: r.Category, Total: r.Total})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if len(out) > topCategories {
		out = out[:topCategories]
	}
	return out
}

func buildInsights(k KPIs, mix []repository.ProductMixResult) Insights {
	in := Insights{
		NetProfit:    k.NetProfit,
		ProfitMargin: percent(k.NetProfit, k.TotalRevenue),
		ExpenseRatio: percent(k.TotalExpenses, k.TotalRevenue),
		TotalOrders:  k.TotalOrders,
		ActiveOrders: k.ActiveOrders,
		Verdict:      unhealthyVerdict,
	}
	if in.ProfitMargin > healthyMargin {
		in.Verdict = healthyVerdict
	}

	var top *repository.ProductMixResult
	for i := range mix {
		if top == nil || mix[i].Revenue > top.Revenue {
			top = &mix[i]
		}
	}
	if top != nil {
		in.TopProduct = top.Garment
		// Share of money received; booked value can exceed it.
		in.TopProductShare = percent(top.Revenue, k.TotalRevenue)
	}
	return in
}

// percent is part/whole*100 rounded to one decimal, or 0 for an empty whole.
func percent(part, whole ledger.Amount) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

// auditLog returns the latest expenses in rng.
func (s *DashboardService) auditLog(ctx context.Context, rng repository.DateRange) ([]entity.Expense, error) {
	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: auditLogSize},
	}
	if !rng.From.IsZero() {
		params.From = &rng.From
	}
	if !rng.To.IsZero() {
		params.To = &rng.To
	}
	expenses, _, err := s.expenseRepo.List(ctx, params)
	return expenses, err
}
