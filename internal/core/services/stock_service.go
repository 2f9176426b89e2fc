package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/google/uuid"
)

// stockService implements the StockSvcFacade interface
type stockService struct {
	BaseService
	store portsrepo.LedgerStore
	lock  *sync.Mutex
}

// NewStockService creates a new stock ledger service with the provided options
func NewStockService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.StockSvcFacade {
	return &stockService{
		BaseService: newBaseService(options),
		store:       store,
		lock:        ledgerLock(store),
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) AddStock(ctx context.Context, medicineID string, quantity int, notes string) (*domain.StockChange, error) {
	return s.adjust(ctx, stockChange{
		medicineID: medicineID,
		operation:  domain.StockAdd,
		quantity:   quantity,
		notes:      notes,
	})
}

func (s *stockService) ReduceStock(ctx context.Context, medicineID string, quantity int, notes string) (*domain.StockChange, error) {
	return s.adjust(ctx, stockChange{
		medicineID: medicineID,
		operation:  domain.StockReduce,
		quantity:   quantity,
		notes:      notes,
	})
}

func (s *stockService) adjust(ctx context.Context, change stockChange) (*domain.StockChange, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("medicine_id", change.medicineID),
		slog.String("operation", string(change.operation)),
		slog.Int("quantity", change.quantity),
	)
	if change.quantity <= 0 {
		err := fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuantity, change.quantity)
		logger.Warn("Rejected stock adjustment", slog.String("reason", err.Error()))
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	change.timestamp = s.Now()
	var result *domain.StockChange
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		var err error
		result, err = applyStockChange(ctx, repo, change)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Stock adjustment failed",
			slog.String("medicine_id", change.medicineID),
			slog.String("operation", string(change.operation)))
		return nil, fmt.Errorf("failed to %s stock for medicine %s: %w", change.operation, change.medicineID, err)
	}

	logger.Info("Stock adjusted",
		slog.String("stock_entry_id", result.Entry.StockEntryID),
		slog.Int("previous_quantity", result.Entry.PreviousQuantity),
		slog.Int("new_quantity", result.Entry.NewQuantity))
	return result, nil
}

// stockChange describes one quantity mutation to apply inside a transaction.
type stockChange struct {
	medicineID string
	operation  domain.StockOperation
	quantity   int
	notes      string
	saleID     *string
	timestamp  time.Time
}

// applyStockChange is the only code path that changes a medicine's quantity
// after creation. It reads the current quantity, appends the ledger entry and
// writes the new quantity through repo, which must be bound to a transaction.
func applyStockChange(ctx context.Context, repo portsrepo.LedgerRepository, change stockChange) (*domain.StockChange, error) {
	medicine, err := repo.FindMedicineByID(ctx, change.medicineID)
	if err != nil {
		return nil, err
	}

	previous := medicine.Quantity
	next := previous
	switch change.operation {
	case domain.StockAdd:
		next = previous + change.quantity
	case domain.StockReduce:
		if change.quantity > previous {
			return nil, &apperrors.InsufficientStockError{
				MedicineID: change.medicineID,
				Requested:  change.quantity,
				Available:  previous,
			}
		}
		next = previous - change.quantity
	}

	entry := domain.StockEntry{
		StockEntryID:     uuid.NewString(),
		MedicineID:       medicine.MedicineID,
		MedicineName:     medicine.Name,
		Operation:        change.operation,
		Quantity:         change.quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Notes:            change.notes,
		SaleID:           change.saleID,
		Timestamp:        change.timestamp,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	medicine.Quantity = next
	medicine.UpdatedAt = change.timestamp
	if err := repo.UpdateMedicine(ctx, *medicine); err != nil {
		return nil, err
	}
	if err := repo.SaveStockEntry(ctx, &entry); err != nil {
		return nil, err
	}

	return &domain.StockChange{Entry: entry, Medicine: *medicine}, nil
}

// History returns the matching entries, newest first.
func (s *stockService) History(ctx context.Context, filter dto.StockHistoryFilter) ([]domain.StockEntry, error) {
	if filter.Operation != nil && !filter.Operation.IsValid() {
		return nil, apperrors.NewValidationError("operation", fmt.Sprintf("must be %q or %q", domain.StockAdd, domain.StockReduce))
	}

	entries, err := s.store.ListStockEntries(ctx, portsrepo.StockEntryFilter{
		MedicineID: filter.MedicineID,
		Operation:  filter.Operation,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock history")
		return nil, fmt.Errorf("failed to list stock history: %w", err)
	}
	if entries == nil {
		return []domain.StockEntry{}, nil
	}

	sortNewestFirst(entries, func(e domain.StockEntry) (time.Time, int64) { return e.Timestamp, e.Sequence })
	s.LogDebug(ctx, "Stock history loaded", slog.Int("entries", len(entries)))
	return entries, nil
}

// Reconcile replays the history of a medicine. Deleted medicines can still be
// reconciled from their entries; the last entry then stands in for the stored quantity.
func (s *stockService) Reconcile(ctx context.Context, medicineID string) (*domain.StockReconciliation, error) {
	entries, err := s.store.ListStockEntries(ctx, portsrepo.StockEntryFilter{MedicineID: &medicineID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load stock history", slog.String("medicine_id", medicineID))
		return nil, fmt.Errorf("failed to reconcile medicine %s: %w", medicineID, err)
	}

	medicine, err := s.store.FindMedicineByID(ctx, medicineID)
	deleted := errors.Is(err, apperrors.ErrNotFound)
	if err != nil && !deleted {
		s.LogError(ctx, err, "Failed to load medicine", slog.String("medicine_id", medicineID))
		return nil, fmt.Errorf("failed to reconcile medicine %s: %w", medicineID, err)
	}
	if deleted && len(entries) == 0 {
		return nil, fmt.Errorf("failed to reconcile medicine %s: %w", medicineID, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		}
		return entries[i].Sequence < entries[j].Sequence
	})

	rec := &domain.StockReconciliation{
		MedicineID:      medicineID,
		MedicineDeleted: deleted,
		EntryCount:      len(entries),
	}
	if !deleted {
		rec.MedicineName = medicine.Name
		rec.ActualQuantity = medicine.Quantity
		rec.InitialQuantity = medicine.Quantity
	}

	if len(entries) > 0 {
		first, last := entries[0], entries[len(entries)-1]
		rec.InitialQuantity = first.PreviousQuantity
		if deleted {
			rec.MedicineName = last.MedicineName
			rec.ActualQuantity = last.NewQuantity
		}
		for i, e := range entries {
			switch e.Operation {
			case domain.StockAdd:
				rec.TotalAdded += e.Quantity
			case domain.StockReduce:
				rec.TotalReduced += e.Quantity
			}
			if i > 0 && e.PreviousQuantity != entries[i-1].NewQuantity {
				rec.ChainBreaks++
			}
		}
	}

	rec.ExpectedQuantity = rec.InitialQuantity + rec.TotalAdded - rec.TotalReduced
	rec.Balanced = rec.ExpectedQuantity == rec.ActualQuantity && rec.ChainBreaks == 0
	if !rec.Balanced {
		s.LogWarn(ctx, errors.New("stock history does not match stored quantity"), "Reconciliation mismatch",
			slog.String("medicine_id", medicineID),
			slog.Int("expected", rec.ExpectedQuantity),
			slog.Int("actual", rec.ActualQuantity),
			slog.Int("chain_breaks", rec.ChainBreaks))
	}
	return rec, nil
}

// sortNewestFirst orders items by timestamp then storage sequence, both descending.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, si := key(items[i])
		tj, sj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return si > sj
	})
}
