package services

import (
	"context"
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/dto"
)

// SalesWriterSvc defines write operations for the sales ledger
type SalesWriterSvc interface {
	// RecordSale stores the sale and its stock reduction atomically.
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*domain.Sale, error)
}

// SalesReaderSvc defines read and aggregation operations over the sales ledger
type SalesReaderSvc interface {
	// ListSales returns every sale in recording order.
	ListSales(ctx context.Context) ([]domain.Sale, error)

	// SalesByDateRange returns sales whose timestamp lies in [start, end].
	SalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error)

	// MonthlyRollup buckets sales by YYYY-MM, ascending.
	MonthlyRollup(ctx context.Context) ([]domain.MonthlySales, error)

	// TopSelling ranks medicines by quantity sold, descending.
	TopSelling(ctx context.Context, limit int) ([]domain.TopSellingMedicine, error)

	// Summary totals every sale.
	Summary(ctx context.Context) (*domain.SalesSummary, error)
}

// SalesSvcFacade combines all sales-related service interfaces
type SalesSvcFacade interface {
	SalesWriterSvc
	SalesReaderSvc
}
