package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/SscSPs/medinventory_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// stockHandler handles stock adjustments and the stock history.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers the stock ledger routes.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	medicineStock := rg.Group("/medicines/:medicineID/stock")
	{
		medicineStock.POST("/add", h.addStock)
		medicineStock.POST("/reduce", h.reduceStock)
		medicineStock.GET("/reconcile", h.reconcile)
	}

	rg.GET("/stock/history", h.listHistory)
}

// addStock godoc
// @Summary Add stock
// @Description Increases the quantity on hand and records an "add" entry.
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   medicineID path string true "Medicine ID"
// @Param   adjustment body dto.StockAdjustmentRequest true "Quantity and notes"
// @Success 200 {object} dto.StockChangeResponse
// @Failure 400 {object} map[string]string "Quantity is not a positive integer"
// @Failure 404 {object} map[string]string "Medicine not found"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /medicines/{medicineID}/stock/add [post]
func (h *stockHandler) addStock(c *gin.Context) {
	h.adjust(c, h.stockService.AddStock)
}

// reduceStock godoc
// @Summary Reduce stock
// @Description Decreases the quantity on hand and records a "reduce" entry. Never goes below zero.
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   medicineID path string true "Medicine ID"
// @Param   adjustment body dto.StockAdjustmentRequest true "Quantity and notes"
// @Success 200 {object} dto.StockChangeResponse
// @Failure 400 {object} map[string]string "Quantity is not a positive integer"
// @Failure 404 {object} map[string]string "Medicine not found"
// @Failure 409 {object} map[string]interface{} "Insufficient stock"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /medicines/{medicineID}/stock/reduce [post]
func (h *stockHandler) reduceStock(c *gin.Context) {
	h.adjust(c, h.stockService.ReduceStock)
}

type adjustFunc func(ctx context.Context, medicineID string, quantity int, notes string) (*domain.StockChange, error)

func (h *stockHandler) adjust(c *gin.Context, apply adjustFunc) {
	logger := middleware.GetLoggerFromContext(c)
	medicineID := c.Param("medicineID")

	var req dto.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	change, err := apply(c.Request.Context(), medicineID, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, logger, err, "Failed to adjust stock")
		return
	}

	c.JSON(http.StatusOK, dto.ToStockChangeResponse(change))
}

// reconcile godoc
// @Summary Reconcile stock history
// @Description Replays the stock history of a medicine and compares it with the stored quantity.
// @Tags stock
// @Produce  json
// @Param   medicineID path string true "Medicine ID"
// @Success 200 {object} domain.StockReconciliation
// @Failure 404 {object} map[string]string "No medicine or history with this ID"
// @Router /medicines/{medicineID}/stock/reconcile [get]
func (h *stockHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	result, err := h.stockService.Reconcile(c.Request.Context(), c.Param("medicineID"))
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile stock")
		return
	}

	c.JSON(http.StatusOK, result)
}

// listHistory godoc
// @Summary List stock history
// @Description Lists stock entries newest first, optionally filtered by medicine and operation.
// @Tags stock
// @Produce  json
// @Param   medicineID query string false "Medicine ID"
// @Param   operation query string false "add or reduce"
// @Param   limit query int false "Page size, 1 to 500" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListStockEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter, limit or token"
// @Router /stock/history [get]
func (h *stockHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.ListStockHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	entries, err := h.stockService.History(c.Request.Context(), params.Filter())
	if err != nil {
		respondError(c, logger, err, "Failed to list stock history")
		return
	}

	page, next, err := pagination.Page(entries, params.Limit, params.NextToken, func(e domain.StockEntry) (time.Time, int64) {
		return e.Timestamp, e.Sequence
	})
	if err != nil {
		respondError(c, logger, err, "Failed to page stock history")
		return
	}

	c.JSON(http.StatusOK, dto.ListStockEntriesResponse{
		Entries:   dto.ToListStockEntryResponse(page),
		NextToken: next,
	})
}
