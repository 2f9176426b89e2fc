package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type alertHandler struct {
	alertService portssvc.AlertSvc
}

// registerAlertRoutes registers the restock and expiry alert routes.
func registerAlertRoutes(rg *gin.RouterGroup, alertService portssvc.AlertSvc) {
	h := &alertHandler{alertService: alertService}

	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.allAlerts)
		alerts.GET("/low-stock", h.lowStock)
		alerts.GET("/expiring", h.expiring)
		alerts.GET("/expired", h.expired)
	}
}

// allAlerts godoc
// @Summary All alerts
// @Description Low stock, expiring and expired medicines using the configured defaults.
// @Tags alerts
// @Produce  json
// @Success 200 {object} dto.AlertsResponse
// @Router /alerts [get]
func (h *alertHandler) allAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	summary, err := h.alertService.AllAlerts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to evaluate alerts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertsResponse(summary))
}

// lowStock godoc
// @Summary Low stock medicines
// @Description Medicines whose quantity is strictly below the threshold.
// @Tags alerts
// @Produce  json
// @Param   threshold query int false "Threshold, defaults to the configured value"
// @Success 200 {array} dto.MedicineResponse
// @Failure 400 {object} map[string]string "threshold must be positive"
// @Router /alerts/low-stock [get]
func (h *alertHandler) lowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.AlertQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	threshold, _ := h.alertService.Defaults()
	if params.Threshold != nil {
		threshold = *params.Threshold
	}

	medicines, err := h.alertService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, logger, err, "Failed to list low stock medicines")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMedicineResponse(medicines))
}

// expiring godoc
// @Summary Medicines expiring soon
// @Description Medicines expiring between today and today plus days, inclusive. Already expired ones are excluded.
// @Tags alerts
// @Produce  json
// @Param   days query int false "Window in days, defaults to the configured value"
// @Success 200 {array} dto.MedicineResponse
// @Failure 400 {object} map[string]string "days must not be negative"
// @Router /alerts/expiring [get]
func (h *alertHandler) expiring(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.AlertQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	_, days := h.alertService.Defaults()
	if params.Days != nil {
		days = *params.Days
	}

	medicines, err := h.alertService.ExpiringSoon(c.Request.Context(), days)
	if err != nil {
		respondError(c, logger, err, "Failed to list expiring medicines")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMedicineResponse(medicines))
}

// expired godoc
// @Summary Expired medicines
// @Tags alerts
// @Produce  json
// @Success 200 {array} dto.MedicineResponse
// @Router /alerts/expired [get]
func (h *alertHandler) expired(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	medicines, err := h.alertService.Expired(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list expired medicines")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMedicineResponse(medicines))
}
