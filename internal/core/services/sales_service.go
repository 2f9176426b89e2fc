package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// salesService implements the SalesSvcFacade interface
type salesService struct {
	BaseService
	store portsrepo.LedgerStore
	lock  *sync.Mutex
}

// NewSalesService creates a new sales ledger service with the provided options
func NewSalesService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.SalesSvcFacade {
	return &salesService{
		BaseService: newBaseService(options),
		store:       store,
		lock:        ledgerLock(store),
	}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

// RecordSale snapshots the medicine's name and selling price, reduces its
// stock and stores the sale in one transaction. On any failure nothing is written.
func (s *salesService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*domain.Sale, error) {
	req.MedicineID = strings.TrimSpace(req.MedicineID)
	if err := validateStruct(req); err != nil {
		s.LogWarn(ctx, err, "Rejected sale")
		return nil, err
	}
	if req.Quantity <= 0 {
		err := fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuantity, req.Quantity)
		s.LogWarn(ctx, err, "Rejected sale", slog.String("medicine_id", req.MedicineID))
		return nil, err
	}

	now := s.Now()
	saleDate := domain.DateOf(now)
	if req.SaleDate != nil && *req.SaleDate != "" {
		parsed, err := dto.ParseDate("saleDate", *req.SaleDate)
		if err != nil {
			return nil, err
		}
		saleDate = parsed
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	saleID := uuid.NewString()
	var sale domain.Sale
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		medicine, err := repo.FindMedicineByID(ctx, req.MedicineID)
		if err != nil {
			return err
		}
		if req.Quantity > medicine.Quantity {
			return &apperrors.InsufficientStockError{
				MedicineID: medicine.MedicineID,
				Requested:  req.Quantity,
				Available:  medicine.Quantity,
			}
		}

		sale = domain.Sale{
			SaleID:       saleID,
			MedicineID:   medicine.MedicineID,
			MedicineName: medicine.Name,
			UnitPrice:    medicine.SellingPrice,
			Quantity:     req.Quantity,
			TotalAmount:  domain.SaleTotal(medicine.SellingPrice, req.Quantity),
			SaleDate:     saleDate,
			CustomerName: strings.TrimSpace(req.CustomerName),
			Notes:        req.Notes,
			Timestamp:    now,
		}

		if _, err := applyStockChange(ctx, repo, stockChange{
			medicineID: medicine.MedicineID,
			operation:  domain.StockReduce,
			quantity:   req.Quantity,
			notes:      fmt.Sprintf("Sale: %d units", req.Quantity),
			saleID:     &saleID,
			timestamp:  now,
		}); err != nil {
			return err
		}

		return repo.SaveSale(ctx, &sale)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to record sale",
			slog.String("medicine_id", req.MedicineID),
			slog.Int("quantity", req.Quantity))
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.LogInfo(ctx, "Sale recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("medicine_id", sale.MedicineID),
		slog.Int("quantity", sale.Quantity),
		slog.String("total_amount", sale.TotalAmount.String()))
	return &sale, nil
}

func (s *salesService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales, err := s.store.ListSales(ctx, portsrepo.SaleFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	s.LogDebug(ctx, "Sales loaded", slog.Int("sales", len(sales)))
	return sales, nil
}

// SalesByDateRange filters on the recording timestamp, inclusive at both ends.
func (s *salesService) SalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	if end.Before(start) {
		return nil, apperrors.NewValidationError("to", "must not be before from")
	}
	sales, err := s.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0)
	for _, sale := range sales {
		if !sale.Timestamp.Before(start) && !sale.Timestamp.After(end) {
			out = append(out, sale)
		}
	}
	return out, nil
}

// MonthlyRollup buckets sales by the UTC month of their timestamp, ascending.
func (s *salesService) MonthlyRollup(ctx context.Context) ([]domain.MonthlySales, error) {
	sales, err := s.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*domain.MonthlySales)
	for _, sale := range sales {
		key := domain.MonthKey(sale.Timestamp)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.MonthlySales{Month: key, TotalRevenue: decimal.Zero}
			buckets[key] = bucket
		}
		bucket.TotalSales++
		bucket.TotalQuantity += sale.Quantity
		bucket.TotalRevenue = bucket.TotalRevenue.Add(sale.TotalAmount)
	}

	out := make([]domain.MonthlySales, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// TopSelling ranks by quantity, then amount, both descending. Remaining ties
// keep the order in which each medicine was first sold.
func (s *salesService) TopSelling(ctx context.Context, limit int) ([]domain.TopSellingMedicine, error) {
	if limit <= 0 {
		return nil, apperrors.NewValidationError("limit", "must be a positive integer")
	}
	sales, err := s.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*domain.TopSellingMedicine)
	order := make([]string, 0)
	for _, sale := range sales {
		t, ok := totals[sale.MedicineID]
		if !ok {
			t = &domain.TopSellingMedicine{
				MedicineID:   sale.MedicineID,
				MedicineName: sale.MedicineName,
				TotalAmount:  decimal.Zero,
			}
			totals[sale.MedicineID] = t
			order = append(order, sale.MedicineID)
		}
		t.TotalQuantity += sale.Quantity
		t.TotalAmount = t.TotalAmount.Add(sale.TotalAmount)
		t.SalesCount++
	}

	out := make([]domain.TopSellingMedicine, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].TotalAmount.GreaterThan(out[j].TotalAmount)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *salesService) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	sales, err := s.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	summary := &domain.SalesSummary{TotalRevenue: decimal.Zero}
	for _, sale := range sales {
		summary.TotalSales++
		summary.TotalQuantity += sale.Quantity
		summary.TotalRevenue = summary.TotalRevenue.Add(sale.TotalAmount)
	}
	return summary, nil
}
