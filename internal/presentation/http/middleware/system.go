package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// SuspensionSource reports the deployment's kill switch.
type SuspensionSource interface {
	IsSuspended() bool
	Billing() service.Billing
}

// KillSwitch answers every request with 402 and the billing details while the
// deployment is suspended.
func KillSwitch(system SuspensionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !system.IsSuspended() {
			c.Next()
			return
		}

		err := apperror.ErrPaymentRequired
		response.ErrorWithData(c, err.Code, err.Message, gin.H{
			"status":  enum.SystemSuspended,
			"billing": system.Billing(),
		})
		c.Abort()
	}
}
