package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// medicineHandler handles HTTP requests related to medicines.
type medicineHandler struct {
	medicineService portssvc.MedicineSvcFacade
}

// newMedicineHandler creates a new medicineHandler.
func newMedicineHandler(ms portssvc.MedicineSvcFacade) *medicineHandler {
	return &medicineHandler{
		medicineService: ms,
	}
}

// registerMedicineRoutes registers routes related to medicines.
func registerMedicineRoutes(rg *gin.RouterGroup, medicineService portssvc.MedicineSvcFacade) {
	h := newMedicineHandler(medicineService)

	medicines := rg.Group("/medicines")
	{
		medicines.POST("", h.createMedicine)
		medicines.GET("", h.listMedicines)
		medicines.GET("/:medicineID", h.getMedicine)
		medicines.PUT("/:medicineID", h.updateMedicine)
		medicines.DELETE("/:medicineID", h.deleteMedicine)
	}
}

// createMedicine godoc
// @Summary Create a new medicine
// @Description Adds a medicine to the inventory. The initial quantity is not recorded as a stock entry.
// @Tags medicines
// @Accept  json
// @Produce  json
// @Param   medicine body dto.CreateMedicineRequest true "Medicine details"
// @Success 201 {object} dto.MedicineResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Failure 500 {object} map[string]string "Failed to create medicine"
// @Router /medicines [post]
func (h *medicineHandler) createMedicine(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	logger.Info("Received request to create medicine", slog.String("medicine_name", req.Name))

	medicine, err := h.medicineService.CreateMedicine(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create medicine")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMedicineResponse(medicine))
}

// listMedicines godoc
// @Summary List or search medicines
// @Description Lists every medicine in creation order. With q, matches name or category case-insensitively.
// @Tags medicines
// @Produce  json
// @Param   q query string false "Search text"
// @Success 200 {array} dto.MedicineResponse
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Failure 500 {object} map[string]string "Failed to list medicines"
// @Router /medicines [get]
func (h *medicineHandler) listMedicines(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.ListMedicinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	medicines, err := h.medicineService.SearchMedicines(c.Request.Context(), params.Query)
	if err != nil {
		respondError(c, logger, err, "Failed to list medicines")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMedicineResponse(medicines))
}

// getMedicine godoc
// @Summary Get a medicine by ID
// @Tags medicines
// @Produce  json
// @Param   medicineID path string true "Medicine ID"
// @Success 200 {object} dto.MedicineResponse
// @Failure 404 {object} map[string]string "Medicine not found"
// @Failure 500 {object} map[string]string "Failed to retrieve medicine"
// @Router /medicines/{medicineID} [get]
func (h *medicineHandler) getMedicine(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	medicineID := c.Param("medicineID")

	medicine, err := h.medicineService.GetMedicine(c.Request.Context(), medicineID)
	if err != nil {
		respondError(c, logger.With(slog.String("medicine_id", medicineID)), err, "Failed to retrieve medicine")
		return
	}

	c.JSON(http.StatusOK, dto.ToMedicineResponse(medicine))
}

// updateMedicine godoc
// @Summary Update a medicine
// @Description Updates descriptive fields. Quantity can only be edited while the medicine has no stock history.
// @Tags medicines
// @Accept  json
// @Produce  json
// @Param   medicineID path string true "Medicine ID"
// @Param   medicine body dto.UpdateMedicineRequest true "Fields to update"
// @Success 200 {object} dto.MedicineResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Medicine not found"
// @Failure 500 {object} map[string]string "Failed to update medicine"
// @Router /medicines/{medicineID} [put]
func (h *medicineHandler) updateMedicine(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	medicineID := c.Param("medicineID")
	logger = logger.With(slog.String("medicine_id", medicineID))

	var req dto.UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	medicine, err := h.medicineService.UpdateMedicine(c.Request.Context(), medicineID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update medicine")
		return
	}

	c.JSON(http.StatusOK, dto.ToMedicineResponse(medicine))
}

// deleteMedicine godoc
// @Summary Delete a medicine
// @Description Removes the medicine. Its stock and sales history are kept.
// @Tags medicines
// @Param   medicineID path string true "Medicine ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Medicine not found"
// @Failure 500 {object} map[string]string "Failed to delete medicine"
// @Router /medicines/{medicineID} [delete]
func (h *medicineHandler) deleteMedicine(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	medicineID := c.Param("medicineID")

	if err := h.medicineService.DeleteMedicine(c.Request.Context(), medicineID); err != nil {
		respondError(c, logger.With(slog.String("medicine_id", medicineID)), err, "Failed to delete medicine")
		return
	}

	c.Status(http.StatusNoContent)
}
