package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/SscSPs/medinventory_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// salesHandler handles HTTP requests for the sales ledger.
type salesHandler struct {
	salesService     portssvc.SalesSvcFacade
	reportingService portssvc.ReportingService
}

func newSalesHandler(ss portssvc.SalesSvcFacade, rs portssvc.ReportingService) *salesHandler {
	return &salesHandler{salesService: ss, reportingService: rs}
}

// registerSalesRoutes registers routes related to sales.
func registerSalesRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade, reportingService portssvc.ReportingService) {
	h := newSalesHandler(salesService, reportingService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.recordSale)
		sales.GET("", h.listSales)
		sales.GET("/monthly", h.monthlyRollup)
		sales.GET("/top", h.topSelling)
		sales.GET("/summary", h.summary)
	}
}

// recordSale godoc
// @Summary Record a sale
// @Description Records a sale at the current selling price and reduces stock in the same transaction.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.RecordSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Medicine not found"
// @Failure 409 {object} map[string]interface{} "Insufficient stock"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /sales [post]
func (h *salesHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	logger = logger.With(slog.String("medicine_id", req.MedicineID))
	sale, err := h.salesService.RecordSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record sale")
		return
	}

	logger.Info("Sale recorded", slog.String("sale_id", sale.SaleID), slog.Int("quantity", sale.Quantity))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Lists sales in recording order. from and to are inclusive calendar dates.
// @Tags sales
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size, 1 to 500" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} map[string]string "Invalid date range, limit or token"
// @Router /sales [get]
func (h *salesHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	var (
		sales []domain.Sale
		err   error
	)
	if params.From != "" || params.To != "" {
		start, end, rangeErr := salesRange(params)
		if rangeErr != nil {
			respondError(c, logger, rangeErr, "Invalid date range")
			return
		}
		sales, err = h.salesService.SalesByDateRange(c.Request.Context(), start, end)
	} else {
		sales, err = h.salesService.ListSales(c.Request.Context())
	}
	if err != nil {
		respondError(c, logger, err, "Failed to list sales")
		return
	}

	page, next, err := pagination.Page(sales, params.Limit, params.NextToken, func(s domain.Sale) (time.Time, int64) {
		return s.Timestamp, s.Sequence
	})
	if err != nil {
		respondError(c, logger, err, "Failed to page sales")
		return
	}

	c.JSON(http.StatusOK, dto.ListSalesResponse{
		Sales:     dto.ToListSaleResponse(page),
		NextToken: next,
	})
}

// salesRange turns the optional from/to dates into an inclusive time range.
// A missing bound is open; to covers the whole of its day.
func salesRange(params dto.ListSalesParams) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if params.From != "" {
		from, err := dto.ParseDate("from", params.From)
		if err != nil {
			return start, end, err
		}
		start = from
	}
	if params.To != "" {
		to, err := dto.ParseDate("to", params.To)
		if err != nil {
			return start, end, err
		}
		end = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, end, nil
}

// monthlyRollup godoc
// @Summary Monthly sales rollup
// @Description Buckets sales by the UTC year and month in which they were recorded, oldest month first.
// @Tags sales
// @Produce  json
// @Success 200 {array} domain.MonthlySales
// @Router /sales/monthly [get]
func (h *salesHandler) monthlyRollup(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	months, err := h.salesService.MonthlyRollup(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build monthly rollup")
		return
	}
	c.JSON(http.StatusOK, months)
}

// topSelling godoc
// @Summary Top selling medicines
// @Description Ranks medicines by quantity sold. Without limit the configured default is used.
// @Tags sales
// @Produce  json
// @Param   limit query int false "Number of medicines"
// @Success 200 {array} domain.TopSellingMedicine
// @Failure 400 {object} map[string]string "limit must be positive"
// @Router /sales/top [get]
func (h *salesHandler) topSelling(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.TopSellingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	var (
		top []domain.TopSellingMedicine
		err error
	)
	if params.Limit == nil {
		top, err = h.reportingService.TopSelling(c.Request.Context(), 0)
	} else {
		top, err = h.salesService.TopSelling(c.Request.Context(), *params.Limit)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to rank medicines")
		return
	}
	c.JSON(http.StatusOK, top)
}

// summary godoc
// @Summary Sales summary
// @Tags sales
// @Produce  json
// @Success 200 {object} domain.SalesSummary
// @Router /sales/summary [get]
func (h *salesHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	summary, err := h.salesService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to summarise sales")
		return
	}
	c.JSON(http.StatusOK, summary)
}
