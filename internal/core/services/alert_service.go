package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
)

// Default alert parameters used when configuration does not override them.
const (
	DefaultLowStockThreshold = 10
	DefaultExpiryWindowDays  = 30
)

// AlertConfig holds the defaults applied by AllAlerts.
type AlertConfig struct {
	LowStockThreshold int
	ExpiryWindowDays  int
}

// alertService implements the AlertSvc interface
type alertService struct {
	BaseService
	repo portsrepo.MedicineReader
	cfg  AlertConfig
}

// NewAlertService creates a new alert service. Non-positive config values fall back to the defaults.
func NewAlertService(repo portsrepo.MedicineReader, cfg AlertConfig, options ...ServiceOption) portssvc.AlertSvc {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = DefaultLowStockThreshold
	}
	if cfg.ExpiryWindowDays < 0 {
		cfg.ExpiryWindowDays = DefaultExpiryWindowDays
	}
	return &alertService{
		BaseService: newBaseService(options),
		repo:        repo,
		cfg:         cfg,
	}
}

var _ portssvc.AlertSvc = (*alertService)(nil)

func (s *alertService) Defaults() (int, int) {
	return s.cfg.LowStockThreshold, s.cfg.ExpiryWindowDays
}

func (s *alertService) LowStock(ctx context.Context, threshold int) ([]domain.Medicine, error) {
	if threshold <= 0 {
		return nil, apperrors.NewValidationError("threshold", "must be a positive integer")
	}
	return s.filter(ctx, func(m domain.Medicine) bool { return m.IsLowStock(threshold) })
}

func (s *alertService) ExpiringSoon(ctx context.Context, windowDays int) ([]domain.Medicine, error) {
	if windowDays < 0 {
		return nil, apperrors.NewValidationError("days", "must not be negative")
	}
	today := s.Now()
	return s.filter(ctx, func(m domain.Medicine) bool { return m.ExpiresWithin(today, windowDays) })
}

func (s *alertService) Expired(ctx context.Context) ([]domain.Medicine, error) {
	today := s.Now()
	return s.filter(ctx, func(m domain.Medicine) bool { return m.IsExpired(today) })
}

// AllAlerts evaluates all three lists against a single read of the medicines.
func (s *alertService) AllAlerts(ctx context.Context) (*domain.AlertSummary, error) {
	medicines, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Now()
	summary := &domain.AlertSummary{
		LowStockThreshold: s.cfg.LowStockThreshold,
		ExpiryWindowDays:  s.cfg.ExpiryWindowDays,
		LowStock:          []domain.Medicine{},
		ExpiringSoon:      []domain.Medicine{},
		Expired:           []domain.Medicine{},
	}
	for _, m := range medicines {
		if m.IsLowStock(s.cfg.LowStockThreshold) {
			summary.LowStock = append(summary.LowStock, m)
		}
		if m.ExpiresWithin(today, s.cfg.ExpiryWindowDays) {
			summary.ExpiringSoon = append(summary.ExpiringSoon, m)
		}
		if m.IsExpired(today) {
			summary.Expired = append(summary.Expired, m)
		}
	}
	return summary, nil
}

func (s *alertService) list(ctx context.Context) ([]domain.Medicine, error) {
	medicines, err := s.repo.ListMedicines(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list medicines for alerts")
		return nil, fmt.Errorf("failed to evaluate alerts: %w", err)
	}
	return medicines, nil
}

func (s *alertService) filter(ctx context.Context, keep func(domain.Medicine) bool) ([]domain.Medicine, error) {
	medicines, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Medicine, 0)
	for _, m := range medicines {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out, nil
}
