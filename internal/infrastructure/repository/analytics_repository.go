package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/tailorshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func inRange(column string, r domainRepo.DateRange) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !r.From.IsZero() {
			db = db.Where(column+" >= ?", r.From)
		}
		if !r.To.IsZero() {
			db = db.Where(column+" < ?", r.To)
		}
		return db
	}
}

func (r *analyticsRepository) TotalRevenue(ctx context.Context, rng domainRepo.DateRange) (ledger.Amount, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Scopes(ShopScope(ctx), inRange("recorded_at", rng)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return ledger.Amount(total), err
}

func (r *analyticsRepository) TotalExpenses(ctx context.Context, rng domainRepo.DateRange) (ledger.Amount, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx), inRange("incurred_at", rng)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return ledger.Amount(total), err
}

func (r *analyticsRepository) OrderCounts(ctx context.Context, rng domainRepo.DateRange) (domainRepo.OrderCounts, error) {
	var counts domainRepo.OrderCounts
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(ShopScope(ctx), inRange("created_at", rng)).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status < ?) AS active,
			COUNT(*) FILTER (WHERE status = ?) AS completed,
			COUNT(*) FILTER (WHERE status = ?) AS pending_closure`,
			enum.OrderStatusClosed, enum.OrderStatusClosed, enum.OrderStatusCollected).
		Scan(&counts).Error
	return counts, err
}

func (r *analyticsRepository) DailyRevenue(ctx context.Context, rng domainRepo.DateRange) ([]domainRepo.DailyRevenueResult, error) {
	var rows []struct {
		Day     time.Time
		Revenue int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Scopes(ShopScope(ctx), inRange("recorded_at", rng)).
		Select("DATE(recorded_at) AS day, SUM(amount) AS revenue").
		Group("DATE(recorded_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.DailyRevenueResult, len(rows))
	for i, row := range rows {
		results[i] = domainRepo.DailyRevenueResult{Date: row.Day, Revenue: ledger.Amount(row.Revenue)}
	}
	return results, nil
}

func (r *analyticsRepository) ProductMix(ctx context.Context, rng domainRepo.DateRange) ([]domainRepo.ProductMixResult, error) {
	var rows []struct {
		Garment string
		Count   int64
		Revenue int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(ShopScope(ctx), inRange("created_at", rng)).
		Select("COALESCE(NULLIF(garment_type, ''), 'Unknown') AS garment, COUNT(*) AS count, COALESCE(SUM(price), 0) AS revenue").
		Group("COALESCE(NULLIF(garment_type, ''), 'Unknown')").
		Order("revenue DESC, garment ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.ProductMixResult, len(rows))
	for i, row := range rows {
		results[i] = domainRepo.ProductMixResult{
			Garment: row.Garment,
			Count:   row.Count,
			Revenue: ledger.Amount(row.Revenue),
		}
	}
	return results, nil
}

func (r *analyticsRepository) ShopTotals(ctx context.Context, rng domainRepo.DateRange) ([]domainRepo.ShopTotalsResult, error) {
	orderRange, orderArgs := rangeSQL("o.created_at", rng)
	expenseRange, expenseArgs := rangeSQL("e.incurred_at", rng)

	args := append(append([]interface{}{}, orderArgs...), orderArgs...)
	args = append(args, expenseArgs...)

	var rows []struct {
		ShopID   uuid.UUID
		ShopName string
		Orders   int64
		Revenue  int64
		Expenses int64
	}
	query := r.db.WithContext(ctx).Model(&entity.Shop{}).
		Select(`shops.id AS shop_id, shops.name AS shop_name,
			(SELECT COUNT(*) FROM orders o WHERE o.shop_id = shops.id`+orderRange+`) AS orders,
			(SELECT COALESCE(SUM(o.price), 0) FROM orders o WHERE o.shop_id = shops.id`+orderRange+`) AS revenue,
			(SELECT COALESCE(SUM(e.amount), 0) FROM expenses e WHERE e.shop_id = shops.id`+expenseRange+`) AS expenses`,
			args...)

	if !SkipsShopScope(ctx) {
		shopID, ok := GetShopID(ctx)
		if !ok {
			return nil, nil
		}
		query = query.Where("shops.id = ?", shopID)
	}

	if err := query.Order("shops.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]domainRepo.ShopTotalsResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domainRepo.ShopTotalsResult{
			ShopID:   row.ShopID,
			ShopName: row.ShopName,
			Orders:   row.Orders,
			Revenue:  ledger.Amount(row.Revenue),
			Expenses: ledger.Amount(row.Expenses),
		})
	}
	return results, nil
}

func rangeSQL(column string, rng domainRepo.DateRange) (string, []interface{}) {
	sql := ""
	var args []interface{}
	if !rng.From.IsZero() {
		sql += " AND " + column + " >= ?"
		args = append(args, rng.From)
	}
	if !rng.To.IsZero() {
		sql += " AND " + column + " < ?"
		args = append(args, rng.To)
	}
	return sql, args
}

func (r *analyticsRepository) ExpensesByCategory(ctx context.Context, rng domainRepo.DateRange) ([]domainRepo.CategoryTotalResult, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(ShopScope(ctx), inRange("incurred_at", rng)).
		Select("COALESCE(NULLIF(category, ''), 'Other') AS category, SUM(amount) AS total").
		Group("COALESCE(NULLIF(category, ''), 'Other')").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.CategoryTotalResult, len(rows))
	for i, row := range rows {
		results[i] = domainRepo.CategoryTotalResult{
			Category: enum.ExpenseCategory(row.Category),
			Total:    ledger.Amount(row.Total),
		}
	}
	return results, nil
}
