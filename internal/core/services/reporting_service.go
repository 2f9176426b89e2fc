package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/utils/pricing"
)

// DefaultTopSellingLimit is the number of best sellers shown when no limit is given.
const DefaultTopSellingLimit = 5

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	medicines portsrepo.MedicineReader
	sales     portssvc.SalesReaderSvc
	alerts    portssvc.AlertSvc
	topLimit  int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithTopSellingLimit sets the default number of best sellers.
func WithTopSellingLimit(limit int) ReportingServiceOption {
	return func(s *reportingService) {
		if limit > 0 {
			s.topLimit = limit
		}
	}
}

// WithReportingClock overrides the time source used for report timestamps.
func WithReportingClock(clock func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.clock = clock
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(medicines portsrepo.MedicineReader, sales portssvc.SalesReaderSvc, alerts portssvc.AlertSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		BaseService: newBaseService(nil),
		medicines:   medicines,
		sales:       sales,
		alerts:      alerts,
		topLimit:    DefaultTopSellingLimit,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) InventoryValuation(ctx context.Context) (*domain.InventoryValuation, error) {
	medicines, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list medicines for valuation")
		return nil, fmt.Errorf("failed to compute inventory valuation: %w", err)
	}
	valuation := pricing.Valuation(medicines)
	return &valuation, nil
}

func (s *reportingService) MonthlySales(ctx context.Context) ([]domain.MonthlySales, error) {
	return s.sales.MonthlyRollup(ctx)
}

func (s *reportingService) TopSelling(ctx context.Context, limit int) ([]domain.TopSellingMedicine, error) {
	if limit <= 0 {
		limit = s.topLimit
	}
	return s.sales.TopSelling(ctx, limit)
}

func (s *reportingService) Dashboard(ctx context.Context) (*domain.DashboardReport, error) {
	valuation, err := s.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.sales.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	alerts, err := s.alerts.AllAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	top, err := s.TopSelling(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	return &domain.DashboardReport{
		GeneratedAt:   s.Now(),
		Inventory:     *valuation,
		Sales:         *summary,
		LowStockCount: len(alerts.LowStock),
		ExpiringCount: len(alerts.ExpiringSoon),
		ExpiredCount:  len(alerts.Expired),
		TopSelling:    top,
	}, nil
}
