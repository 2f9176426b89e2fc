package services

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// AlertSvc flags medicines that need restocking or are close to expiry.
type AlertSvc interface {
	// LowStock returns medicines whose quantity is strictly below threshold.
	LowStock(ctx context.Context, threshold int) ([]domain.Medicine, error)

	// ExpiringSoon returns medicines expiring between today and today+windowDays inclusive.
	ExpiringSoon(ctx context.Context, windowDays int) ([]domain.Medicine, error)

	// Expired returns medicines whose expiry date is before today.
	Expired(ctx context.Context) ([]domain.Medicine, error)

	// AllAlerts evaluates every list with the configured defaults.
	AllAlerts(ctx context.Context) (*domain.AlertSummary, error)

	// Defaults returns the configured low stock threshold and expiry window.
	Defaults() (lowStockThreshold int, expiryWindowDays int)
}
