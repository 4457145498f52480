package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
	"github.com/sangkips/tailorshop-api/pkg/pagination"
	"github.com/sangkips/tailorshop-api/pkg/utils"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func parseOrderFilter(c *gin.Context) (repository.OrderFilter, error) {
	f := repository.OrderFilter{
		View:   repository.ParseOrderView(c.DefaultQuery("view", string(repository.OrderViewOpen))),
		Search: c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		status, err := enum.ParseOrderStatus(s)
		if err != nil {
			return f, apperror.NewFieldError("status", "Status must be between 1 and 6")
		}
		f.Status = &status
	}

	workerID, err := utils.ParseOptionalUUID(c.Query("worker_id"))
	if err != nil {
		return f, apperror.NewBadRequestError("Invalid worker ID")
	}
	f.WorkerID = workerID

	shopID, err := queryShopID(c)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID
	return f, nil
}

// List handles listing orders (supports both page-based and cursor-based pagination)
// @Summary List orders
// @Description ?view=open|all|urgent|pending-closure, ?search=, ?status=, ?worker_id=, ?shop_id=
// @Tags orders
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := bindPagination(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if page.IsCursorBased() {
		result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), &repository.OrderCursorFilterParams{
			OrderFilter: filter,
			Cursor:      page.ToCursorParams(),
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithPagination(c, "Orders retrieved successfully", pagination.FromCursor(result))
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), &repository.OrderFilterParams{
		OrderFilter: filter,
		Pagination:  page.ToPaginationParams(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Orders retrieved successfully", pagination.FromPage(result))
}

// Create handles booking a new order with an optional deposit
// @Summary Create order
// @Tags orders
// @Security BearerAuth
// @Param request body request.CreateOrderRequest true "Order data"
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	shopID, err := bodyShopID(req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	dueDate, err := parseDate("due_date", req.DueDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	leadID, err := utils.ParseOptionalUUID(req.LeadWorkerID)
	if err != nil {
		response.Error(c, apperror.NewFieldError("lead_worker_id", "Invalid worker ID"))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		ShopID:        shopID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		GarmentType:   req.GarmentType,
		Price:         req.Price.Amount(),
		Deposit:       req.Deposit.Amount(),
		DueDate:       dueDate,
		LeadWorkerID:  leadID,
		Squad:         req.Squad,
		Measurements:  req.Measurements,
		Preferences:   req.Preferences,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order with its crew and ledger
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles editing an order
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := updateOrderInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

func updateOrderInput(req *request.UpdateOrderRequest) (*service.UpdateOrderInput, error) {
	input := &service.UpdateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		GarmentType:   req.GarmentType,
		Price:         request.AmountPtr(req.Price),
		Measurements:  req.Measurements,
		Preferences:   req.Preferences,
		Status:        req.Status,
	}

	if req.DueDate != nil {
		due, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			return nil, err
		}
		input.DueDate = due
		input.ClearDueDate = due == nil
	}

	if req.LeadWorkerID != nil {
		lead := uuid.Nil
		if s := strings.TrimSpace(*req.LeadWorkerID); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, apperror.NewFieldError("lead_worker_id", "Invalid worker ID")
			}
			lead = id
		}
		input.LeadWorkerID = &lead
	}

	if req.Squad != nil {
		squad := []uuid.UUID(*req.Squad)
		input.Squad = &squad
	}
	return input, nil
}

// UpdateStatus handles moving an order through the workflow
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewFieldError("status", "Status must be between 1 and 6"))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// Finalize closes an order. While a balance is owed the body must carry
// confirm_debt=true.
func (h *OrderHandler) Finalize(c *gin.Context) {
	id, err := parseID(c, "id", "order")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.FinalizeOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	order, err := h.orderService.FinalizeOrder(c.Request.Context(), id, req.ConfirmDebt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order closed successfully", order)
}
