package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles money taken against orders
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// QuickPay records a counter payment and returns the receipt to share
// @Summary Quick pay
// @Tags payments
// @Security BearerAuth
// @Param request body request.QuickPayRequest true "Payment"
// @Router /orders/{id}/payments [post]
func (h *PaymentHandler) QuickPay(c *gin.Context) {
	orderID, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.QuickPayRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.paymentService.QuickPay(c.Request.Context(), &service.QuickPayInput{
		OrderID: orderID,
		Amount:  req.Amount.Amount(),
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", out)
}

// List returns an order's payment history, oldest first
func (h *PaymentHandler) List(c *gin.Context) {
	orderID, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payments retrieved successfully", payments)
}
