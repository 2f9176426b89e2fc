package mapping

import (
	"database/sql"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/models"
)

// ToModelStockEntry converts a domain StockEntry to a model StockEntry
func ToModelStockEntry(d domain.StockEntry) models.StockEntry {
	var saleID sql.NullString
	if d.SaleID != nil {
		saleID = sql.NullString{String: *d.SaleID, Valid: true}
	}
	return models.StockEntry{
		Seq:              d.Sequence,
		StockEntryID:     d.StockEntryID,
		MedicineID:       d.MedicineID,
		MedicineName:     d.MedicineName,
		Operation:        string(d.Operation),
		Quantity:         d.Quantity,
		PreviousQuantity: d.PreviousQuantity,
		NewQuantity:      d.NewQuantity,
		Notes:            d.Notes,
		SaleID:           saleID,
		RecordedAt:       d.Timestamp.UTC(),
	}
}

// ToDomainStockEntry converts a model StockEntry to a domain StockEntry
func ToDomainStockEntry(m models.StockEntry) domain.StockEntry {
	d := domain.StockEntry{
		StockEntryID:     m.StockEntryID,
		MedicineID:       m.MedicineID,
		MedicineName:     m.MedicineName,
		Operation:        domain.StockOperation(m.Operation),
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Notes:            m.Notes,
		Timestamp:        m.RecordedAt.UTC(),
		Sequence:         m.Seq,
	}
	if m.SaleID.Valid {
		saleID := m.SaleID.String
		d.SaleID = &saleID
	}
	return d
}

// ToDomainStockEntrySlice converts a slice of model StockEntries to a slice of domain StockEntries
func ToDomainStockEntrySlice(ms []models.StockEntry) []domain.StockEntry {
	ds := make([]domain.StockEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockEntry(m)
	}
	return ds
}
