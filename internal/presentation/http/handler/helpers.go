package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/middleware"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
	"github.com/sangkips/tailorshop-api/pkg/utils"
)

const dateLayout = "2006-01-02"

// bindJSON binds the request body and writes the error response when it
// fails. A malformed amount is a 422, anything else a 400.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	if errors.Is(err, ledger.ErrInvalidAmount) {
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Amounts must be non-negative numbers")
		return false
	}
	response.BadRequest(c, "Invalid request body")
	return false
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, _ := c.Get(middleware.UserRoleKey)
	r, _ := role.(enum.UserRole)
	return r
}

// IsOwner checks if the caller sees every shop
func IsOwner(c *gin.Context) bool {
	return GetUserRole(c) == enum.RoleOwner
}

// parseID reads a uuid path parameter.
func parseID(c *gin.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + label + " ID")
	}
	return id, nil
}

// queryShopID reads the optional shop_id filter. "all" and blank mean no filter.
func queryShopID(c *gin.Context) (*uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(c.Query("shop_id"))
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid shop ID")
	}
	return id, nil
}

func bodyShopID(s string) (*uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(s)
	if err != nil {
		return nil, apperror.NewFieldError("shop_id", "Invalid shop ID")
	}
	return id, nil
}

// parseDate reads a YYYY-MM-DD value; blank returns nil.
func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, apperror.NewFieldError(field, field+" must be a date (YYYY-MM-DD)")
	}
	return &t, nil
}

// parseDateRange reads ?from=&to= as whole local days. to is inclusive.
func parseDateRange(c *gin.Context) (repository.DateRange, error) {
	var rng repository.DateRange

	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		return rng, err
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		return rng, err
	}

	if from != nil {
		rng.From = *from
	}
	if to != nil {
		rng.To = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if from != nil && to != nil && rng.To.Before(rng.From) {
		return rng, apperror.NewFieldError("to", "to must not be before from")
	}
	return rng, nil
}

// bindPagination reads the unified page/cursor query parameters.
func bindPagination(c *gin.Context) (*pagination.UnifiedPaginationParams, error) {
	var p pagination.UnifiedPaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		return nil, apperror.NewBadRequestError("Invalid pagination parameters")
	}
	return &p, nil
}
