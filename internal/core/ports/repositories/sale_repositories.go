package repositories

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// SaleFilter narrows a sales query. Nil fields match everything.
type SaleFilter struct {
	MedicineID *string
}

// SaleReader defines read operations for the sales ledger
type SaleReader interface {
	// ListSales returns matching sales in recording order (oldest first).
	ListSales(ctx context.Context, filter SaleFilter) ([]domain.Sale, error)
}

// SaleWriter defines write operations for the sales ledger
type SaleWriter interface {
	// SaveSale appends a sale and assigns its Sequence.
	SaveSale(ctx context.Context, sale *domain.Sale) error
}

// SaleRepositoryFacade combines all sales repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
