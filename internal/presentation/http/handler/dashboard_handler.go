package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMetrics returns the headline numbers for the caller's scope
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.dashboardService.GetMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard metrics retrieved successfully", metrics)
}

// GetOverview returns the owner's financial overview for ?from=&to=
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	overview, err := h.dashboardService.GetOverview(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial overview retrieved successfully", overview)
}

func exportName(ext string) string {
	return "financial-overview-" + time.Now().Format(dateLayout) + "." + ext
}

// ExportCSV downloads the financial overview as CSV
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Buffer so a failing query still gets a JSON error.
	var buf bytes.Buffer
	if err := h.dashboardService.ExportCSV(c.Request.Context(), rng, &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportName("csv")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX downloads the financial overview as an Excel workbook
func (h *DashboardHandler) ExportXLSX(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := h.dashboardService.ExportXLSX(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportName("xlsx")+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
