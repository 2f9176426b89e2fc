package dto

import (
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordSaleRequest defines the data needed to record a sale.
type RecordSaleRequest struct {
	MedicineID   string  `json:"medicineID" validate:"required"`
	Quantity     int     `json:"quantity"`
	SaleDate     *string `json:"saleDate"` // Optional, YYYY-MM-DD; defaults to today
	CustomerName string  `json:"customerName" validate:"max=200"`
	Notes        string  `json:"notes" validate:"max=2000"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	From      string  `form:"from"`
	To        string  `form:"to"`
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID       string          `json:"saleID"`
	MedicineID   string          `json:"medicineID"`
	MedicineName string          `json:"medicineName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	SaleDate     string          `json:"saleDate"`
	CustomerName string          `json:"customerName"`
	Notes        string          `json:"notes"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ListSalesResponse is a page of sales.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:       s.SaleID,
		MedicineID:   s.MedicineID,
		MedicineName: s.MedicineName,
		UnitPrice:    s.UnitPrice,
		Quantity:     s.Quantity,
		TotalAmount:  s.TotalAmount,
		SaleDate:     s.SaleDate.Format(DateLayout),
		CustomerName: s.CustomerName,
		Notes:        s.Notes,
		Timestamp:    s.Timestamp,
	}
}

// ToListSaleResponse converts sales to response DTOs
func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}
