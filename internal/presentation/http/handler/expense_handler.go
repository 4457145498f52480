package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
)

// ExpenseHandler handles money spent by shops
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses with ?shop_id=, ?category=, ?from=, ?to=
func (h *ExpenseHandler) List(c *gin.Context) {
	var page pagination.PaginationParams
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	shopID, err := queryShopID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rng, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.ListExpensesInput{
		Pagination: &page,
		ShopID:     shopID,
		Category:   c.Query("category"),
	}
	if !rng.From.IsZero() {
		input.From = &rng.From
	}
	if !rng.To.IsZero() {
		input.To = &rng.To
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Expenses retrieved successfully", pagination.FromPage(result))
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	shopID, err := bodyShopID(req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	incurredAt, err := parseDate("incurred_at", req.IncurredAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		ShopID:     shopID,
		ItemName:   req.ItemName,
		Amount:     req.Amount.Amount(),
		Category:   req.Category,
		Notes:      req.Notes,
		IncurredAt: incurredAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Expense recorded successfully", expense)
}

// Delete handles removing an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", "expense")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Expense deleted successfully", nil)
}

// Categories lists the expense categories
func (h *ExpenseHandler) Categories(c *gin.Context) {
	response.OK(c, "Expense categories retrieved successfully", h.expenseService.ExpenseCategories())
}
