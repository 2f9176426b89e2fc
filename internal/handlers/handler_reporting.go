package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/inventory-value", h.inventoryValuation)
		reports.GET("/monthly-sales", h.monthlySales)
		reports.GET("/dashboard", h.dashboard)
	}
}

// inventoryValuation godoc
// @Summary Inventory valuation
// @Description Prices the stock on hand at purchase and selling price.
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.InventoryValuation
// @Router /reports/inventory-value [get]
func (h *reportingHandler) inventoryValuation(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	valuation, err := h.reportingService.InventoryValuation(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to value inventory")
		return
	}
	c.JSON(http.StatusOK, valuation)
}

// monthlySales godoc
// @Summary Monthly sales report
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.MonthlySales
// @Router /reports/monthly-sales [get]
func (h *reportingHandler) monthlySales(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	months, err := h.reportingService.MonthlySales(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build monthly sales")
		return
	}
	c.JSON(http.StatusOK, months)
}

// dashboard godoc
// @Summary Dashboard
// @Description Headline stock, sales and alert numbers in one response.
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.DashboardReport
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	report, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, report)
}
