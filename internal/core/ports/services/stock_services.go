package services

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/dto"
)

// StockWriterSvc defines the quantity mutations of the stock ledger
type StockWriterSvc interface {
	// AddStock increases the on-hand quantity and records an "add" entry.
	AddStock(ctx context.Context, medicineID string, quantity int, notes string) (*domain.StockChange, error)

	// ReduceStock decreases the on-hand quantity and records a "reduce" entry.
	ReduceStock(ctx context.Context, medicineID string, quantity int, notes string) (*domain.StockChange, error)
}

// StockReaderSvc defines read operations over the stock ledger
type StockReaderSvc interface {
	// History returns matching entries, newest first.
	History(ctx context.Context, filter dto.StockHistoryFilter) ([]domain.StockEntry, error)

	// Reconcile replays the history of one medicine against its stored quantity.
	Reconcile(ctx context.Context, medicineID string) (*domain.StockReconciliation, error)
}

// StockSvcFacade combines all stock ledger service interfaces
type StockSvcFacade interface {
	StockWriterSvc
	StockReaderSvc
}
