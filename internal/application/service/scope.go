package service

import (
	"context"

	"github.com/google/uuid"
	infraRepo "github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// resolveShop picks the shop a write lands in. Owners must name one; managers
// always write to their own shop and may not name another.
func resolveShop(ctx context.Context, requested *uuid.UUID) (uuid.UUID, error) {
	if infraRepo.SkipsShopScope(ctx) {
		if requested == nil || *requested == uuid.Nil {
			return uuid.Nil, apperror.NewFieldError("shop_id", "shop_id is required")
		}
		return *requested, nil
	}

	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return uuid.Nil, apperror.NewForbiddenError("No shop assigned to this profile")
	}
	if requested != nil && *requested != uuid.Nil && *requested != shopID {
		return uuid.Nil, apperror.ErrForbidden
	}
	return shopID, nil
}

// filterShop narrows an owner's read to one shop. Managers are already scoped
// to theirs, so their request is ignored.
func filterShop(ctx context.Context, requested *uuid.UUID) *uuid.UUID {
	if !infraRepo.SkipsShopScope(ctx) {
		return nil
	}
	if requested == nil || *requested == uuid.Nil {
		return nil
	}
	return requested
}

// callerID returns the profile id in ctx, or nil.
func callerID(ctx context.Context) *uuid.UUID {
	id, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil
	}
	return &id
}
