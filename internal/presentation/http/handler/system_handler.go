package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
)

// SystemHandler serves the public status and branding documents
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// Status reports whether the deployment is active. It stays reachable while
// suspended so clients can show the billing details.
func (h *SystemHandler) Status(c *gin.Context) {
	response.OK(c, "System status retrieved", h.systemService.Status())
}

func (h *SystemHandler) Branding(c *gin.Context) {
	response.OK(c, "Branding retrieved", h.systemService.Branding())
}

func (h *SystemHandler) Garments(c *gin.Context) {
	response.OK(c, "Garment types retrieved", h.systemService.Garments())
}
