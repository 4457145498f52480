package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// ReceiptHandler handles receipts and the thermal printer.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Get builds an order's receipt. ?paying_now= previews a payment not yet taken.
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	var payingNow ledger.Amount
	if s := c.Query("paying_now"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			response.Error(c, apperror.NewFieldError("paying_now", "paying_now must be a positive amount"))
			return
		}
		payingNow = ledger.FromFloat(v)
	}

	out, err := h.receiptService.BuildReceipt(c.Request.Context(), id, payingNow)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt generated", out)
}

// Print sends an order's receipt to the printer. The receipt comes back even
// when the printer fails.
func (h *ReceiptHandler) Print(c *gin.Context) {
	var req request.PrintReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return
	}

	out, err := h.receiptService.PrintReceipt(c.Request.Context(), id, req.PayingNow.Amount())
	if err != nil {
		response.Error(c, err)
		return
	}

	if !out.Printed {
		response.OK(c, "Receipt generated but printing failed", out)
		return
	}
	response.OK(c, "Receipt printed successfully", out)
}

// GetStatus returns the current printer connection status.
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetPrinterStatus(c.Request.Context()))
}

// TestPrint sends a test page to the printer.
func (h *ReceiptHandler) TestPrint(c *gin.Context) {
	if err := h.receiptService.TestPrint(c.Request.Context()); err != nil {
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"warning": err.Error(),
		})
		return
	}
	response.OK(c, "Test page sent to printer", nil)
}
