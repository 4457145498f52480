package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
)

// WorkerHandler handles the tailor roster
type WorkerHandler struct {
	workerService *service.WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService *service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// List handles listing workers. Owners may filter by ?shop_id=.
func (h *WorkerHandler) List(c *gin.Context) {
	shopID, err := queryShopID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	workers, err := h.workerService.ListWorkers(c.Request.Context(), shopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Workers retrieved successfully", workers)
}

// Create handles adding a worker
func (h *WorkerHandler) Create(c *gin.Context) {
	var req request.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shopID, err := bodyShopID(req.ShopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	worker, err := h.workerService.CreateWorker(c.Request.Context(), &service.CreateWorkerInput{
		ShopID: shopID,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Worker created successfully", worker)
}

// Get handles getting a single worker
func (h *WorkerHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id", "worker")
	if err != nil {
		response.Error(c, err)
		return
	}

	worker, err := h.workerService.GetWorker(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Worker retrieved successfully", worker)
}

// Update handles editing a worker
func (h *WorkerHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id", "worker")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.workerService.UpdateWorker(c.Request.Context(), id, &service.UpdateWorkerInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Worker updated successfully", worker)
}

// Delete handles removing a worker with no open assignments
func (h *WorkerHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id", "worker")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.workerService.DeleteWorker(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Worker deleted successfully", nil)
}

// Assignments lists the orders a worker leads or sews on. ?all=true includes
// closed work.
func (h *WorkerHandler) Assignments(c *gin.Context) {
	id, err := parseID(c, "id", "worker")
	if err != nil {
		response.Error(c, err)
		return
	}

	orders, err := h.workerService.Assignments(c.Request.Context(), id, c.Query("all") != "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Assignments retrieved successfully", orders)
}
