package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// ShopHandler handles the owner's shop administration
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func managerInput(req *request.ManagerRequest) *service.ManagerInput {
	if req == nil {
		return nil
	}
	return &service.ManagerInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
}

// List handles listing shops with their manager and crew size
func (h *ShopHandler) List(c *gin.Context) {
	shops, err := h.shopService.ListShops(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shops retrieved successfully", shops)
}

// Create handles creating a shop and, optionally, its manager
// @Summary Create shop
// @Tags shops
// @Security BearerAuth
// @Param request body request.CreateShopRequest true "Shop data"
// @Router /shops [post]
func (h *ShopHandler) Create(c *gin.Context) {
	var req request.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), &service.CreateShopInput{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		Manager:  managerInput(req.Manager),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shop created successfully", shop)
}

// Get handles getting a single shop
func (h *ShopHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id", "shop")
	if err != nil {
		response.Error(c, err)
		return
	}

	shop, err := h.shopService.GetShop(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop retrieved successfully", shop)
}

// Update handles renaming a shop or changing its contact details
func (h *ShopHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id", "shop")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), id, &service.UpdateShopInput{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop updated successfully", shop)
}

// Delete removes a shop with its crew, orders and spend
func (h *ShopHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", "shop")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.shopService.DeleteShop(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shop deleted successfully", nil)
}

// AppointManager replaces the shop's manager with a new profile
func (h *ShopHandler) AppointManager(c *gin.Context) {
	id, err := parseID(c, "id", "shop")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.ManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	manager, err := h.shopService.AppointManager(c.Request.Context(), id, managerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Manager appointed successfully", manager)
}

// ResetManagerPassword sets a new password on the shop's manager
func (h *ShopHandler) ResetManagerPassword(c *gin.Context) {
	id, err := parseID(c, "id", "shop")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.ResetManagerPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewFieldError("new_password", "New password must be at least 8 characters"))
		return
	}

	if err := h.shopService.ResetManagerPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Manager password updated successfully", nil)
}

// FireManager removes the shop's manager profile
func (h *ShopHandler) FireManager(c *gin.Context) {
	id, err := parseID(c, "id", "shop")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.shopService.FireManager(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Manager removed successfully", nil)
}
