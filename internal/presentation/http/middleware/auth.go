package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	infraRepo "github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/utils"
)

// Gin context keys set by AuthMiddleware.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	ShopIDKey    = "shop_id"
)

// AuthMiddleware creates a JWT authentication middleware. Besides the gin
// context keys it scopes the request context: owners read across shops,
// managers only see their own.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		role := enum.ParseUserRole(claims.Role)
		if role == "" {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, role)

		ctx := infraRepo.WithUser(c.Request.Context(), claims.UserID)
		if role == enum.RoleOwner {
			ctx = infraRepo.WithSkipShopScope(ctx, true)
		} else if claims.ShopID != nil {
			c.Set(ShopIDKey, *claims.ShopID)
			ctx = infraRepo.WithShop(ctx, *claims.ShopID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(UserRoleKey)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		role, _ := val.(enum.UserRole)
		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
