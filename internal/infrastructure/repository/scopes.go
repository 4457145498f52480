package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// ShopIDKey is the context key for the caller's shop
	ShopIDKey ctxKey = "shop_id"
	// SkipShopScopeKey marks owner requests that see every shop
	SkipShopScopeKey ctxKey = "skip_shop_scope"
	// UserIDKey is the context key for the caller's profile id
	UserIDKey ctxKey = "user_id"
)

// ShopScope returns a GORM scope that filters by the shop in ctx.
// Owners (SkipShopScopeKey) see every shop. Without a shop the scope
// matches nothing.
func ShopScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return ShopScopeOn(ctx, "")
}

// ShopScopeOn is ShopScope for a query where shop_id must be qualified by table.
func ShopScopeOn(ctx context.Context, table string) func(db *gorm.DB) *gorm.DB {
	column := "shop_id"
	if table != "" {
		column = table + ".shop_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		if SkipsShopScope(ctx) {
			return db
		}

		shopID, ok := GetShopID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", shopID)
	}
}

// WithSkipShopScope marks ctx as belonging to an owner.
func WithSkipShopScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipShopScopeKey, skip)
}

// SkipsShopScope reports whether ctx sees every shop.
func SkipsShopScope(ctx context.Context) bool {
	skip, ok := ctx.Value(SkipShopScopeKey).(bool)
	return ok && skip
}

// WithShop adds the shop id to ctx
func WithShop(ctx context.Context, shopID uuid.UUID) context.Context {
	return context.WithValue(ctx, ShopIDKey, shopID)
}

// GetShopID extracts the shop id from ctx
func GetShopID(ctx context.Context) (uuid.UUID, bool) {
	shopID, ok := ctx.Value(ShopIDKey).(uuid.UUID)
	return shopID, ok && shopID != uuid.Nil
}

// WithUser adds the caller's profile id to ctx
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the caller's profile id from ctx
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
