package services

import (
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.LedgerStore, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Medicine = NewMedicineService(store, options...)
	container.Stock = NewStockService(store, options...)
	container.Sales = NewSalesService(store, options...)
	container.Alert = NewAlertService(store, AlertConfig{
		LowStockThreshold: cfg.LowStockThreshold,
		ExpiryWindowDays:  cfg.ExpiryWindowDays,
	}, options...)

	base := newBaseService(options)
	container.Reporting = NewReportingService(
		store,
		container.Sales,
		container.Alert,
		WithTopSellingLimit(cfg.TopSellingLimit),
		WithReportingClock(base.clock),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MedicineSvcFacade = (*medicineService)(nil)
	_ portssvc.StockSvcFacade    = (*stockService)(nil)
	_ portssvc.SalesSvcFacade    = (*salesService)(nil)
	_ portssvc.AlertSvc          = (*alertService)(nil)
	_ portssvc.ReportingService  = (*reportingService)(nil)
)
