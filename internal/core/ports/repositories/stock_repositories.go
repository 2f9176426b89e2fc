package repositories

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// StockEntryFilter narrows a stock history query. Nil fields match everything.
type StockEntryFilter struct {
	MedicineID *string
	Operation  *domain.StockOperation
}

// StockEntryReader defines read operations for the stock ledger
type StockEntryReader interface {
	// ListStockEntries returns matching entries in recording order (oldest first).
	ListStockEntries(ctx context.Context, filter StockEntryFilter) ([]domain.StockEntry, error)

	// CountStockEntries returns how many entries reference the medicine.
	CountStockEntries(ctx context.Context, medicineID string) (int, error)
}

// StockEntryWriter defines write operations for the stock ledger.
// Entries are append-only: there is no update or delete.
type StockEntryWriter interface {
	// SaveStockEntry appends an entry and assigns its Sequence.
	SaveStockEntry(ctx context.Context, entry *domain.StockEntry) error
}

// StockEntryRepositoryFacade combines all stock ledger repository interfaces
type StockEntryRepositoryFacade interface {
	StockEntryReader
	StockEntryWriter
}
