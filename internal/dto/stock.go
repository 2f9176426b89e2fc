package dto

import (
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// StockAdjustmentRequest is the body of the add and reduce stock endpoints.
type StockAdjustmentRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// StockHistoryFilter narrows a stock history listing. Nil fields match everything.
type StockHistoryFilter struct {
	MedicineID *string
	Operation  *domain.StockOperation
}

// ListStockHistoryParams defines query parameters for the stock history endpoint.
type ListStockHistoryParams struct {
	MedicineID string  `form:"medicineID"`
	Operation  string  `form:"operation"`
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"nextToken"`
}

// StockEntryResponse defines the data returned for a stock entry.
type StockEntryResponse struct {
	StockEntryID     string                `json:"stockEntryID"`
	MedicineID       string                `json:"medicineID"`
	MedicineName     string                `json:"medicineName"`
	Operation        domain.StockOperation `json:"operation"`
	Quantity         int                   `json:"quantity"`
	PreviousQuantity int                   `json:"previousQuantity"`
	NewQuantity      int                   `json:"newQuantity"`
	Notes            string                `json:"notes"`
	SaleID           *string               `json:"saleID,omitempty"`
	Timestamp        time.Time             `json:"timestamp"`
}

// ListStockEntriesResponse is a page of stock history.
type ListStockEntriesResponse struct {
	Entries   []StockEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// StockChangeResponse is returned after a stock adjustment.
type StockChangeResponse struct {
	Entry    StockEntryResponse `json:"entry"`
	Medicine MedicineResponse   `json:"medicine"`
}

// ToStockEntryResponse converts a domain.StockEntry to StockEntryResponse DTO
func ToStockEntryResponse(e *domain.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		StockEntryID:     e.StockEntryID,
		MedicineID:       e.MedicineID,
		MedicineName:     e.MedicineName,
		Operation:        e.Operation,
		Quantity:         e.Quantity,
		PreviousQuantity: e.PreviousQuantity,
		NewQuantity:      e.NewQuantity,
		Notes:            e.Notes,
		SaleID:           e.SaleID,
		Timestamp:        e.Timestamp,
	}
}

// ToListStockEntryResponse converts stock entries to response DTOs
func ToListStockEntryResponse(entries []domain.StockEntry) []StockEntryResponse {
	res := make([]StockEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToStockEntryResponse(&entries[i])
	}
	return res
}

// Filter converts the query parameters into a service filter. Empty values match everything.
func (p ListStockHistoryParams) Filter() StockHistoryFilter {
	var f StockHistoryFilter
	if p.MedicineID != "" {
		id := p.MedicineID
		f.MedicineID = &id
	}
	if p.Operation != "" {
		op := domain.StockOperation(p.Operation)
		f.Operation = &op
	}
	return f
}

// ToStockChangeResponse converts a domain.StockChange to StockChangeResponse DTO
func ToStockChangeResponse(c *domain.StockChange) StockChangeResponse {
	return StockChangeResponse{
		Entry:    ToStockEntryResponse(&c.Entry),
		Medicine: ToMedicineResponse(&c.Medicine),
	}
}
