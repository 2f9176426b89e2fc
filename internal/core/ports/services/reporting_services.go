package services

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// ReportingService defines the read-only reports built from the ledger
type ReportingService interface {
	// InventoryValuation prices the current stock at purchase and selling price.
	InventoryValuation(ctx context.Context) (*domain.InventoryValuation, error)

	// MonthlySales returns the monthly sales rollup.
	MonthlySales(ctx context.Context) ([]domain.MonthlySales, error)

	// TopSelling returns the best sellers; limit <= 0 uses the configured default.
	TopSelling(ctx context.Context, limit int) ([]domain.TopSellingMedicine, error)

	// Dashboard bundles the headline numbers.
	Dashboard(ctx context.Context) (*domain.DashboardReport, error)
}
