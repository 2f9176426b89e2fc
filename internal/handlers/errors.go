package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with 503 responses.
const retryAfterSeconds = 5

// respondError maps a service error onto an HTTP status and JSON body.
// fallback is the message used for unexpected errors, whose details are only logged.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var (
		validationErr   *apperrors.ValidationError
		insufficientErr *apperrors.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Warn("Validation error", slog.String("field", validationErr.Field), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Field + " " + validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, apperrors.ErrInvalidQuantity):
		logger.Warn("Invalid quantity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidQuantity.Error(), "field": "quantity"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &insufficientErr):
		logger.Warn("Insufficient stock", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error":      apperrors.ErrInsufficientStock.Error(),
			"medicineID": insufficientErr.MedicineID,
			"requested":  insufficientErr.Requested,
			"available":  insufficientErr.Available,
		})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsRetryable(err):
		logger.Error("Storage unavailable", slog.String("error", err.Error()))
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable, please retry"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// respondBindError reports a malformed request body or query string.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}
