package mapping

import (
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		Seq:          d.Sequence,
		SaleID:       d.SaleID,
		MedicineID:   d.MedicineID,
		MedicineName: d.MedicineName,
		UnitPrice:    d.UnitPrice,
		Quantity:     d.Quantity,
		TotalAmount:  d.TotalAmount,
		SaleDate:     domain.DateOf(d.SaleDate),
		CustomerName: d.CustomerName,
		Notes:        d.Notes,
		RecordedAt:   d.Timestamp.UTC(),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:       m.SaleID,
		MedicineID:   m.MedicineID,
		MedicineName: m.MedicineName,
		UnitPrice:    m.UnitPrice,
		Quantity:     m.Quantity,
		TotalAmount:  m.TotalAmount,
		SaleDate:     domain.DateOf(m.SaleDate.UTC()),
		CustomerName: m.CustomerName,
		Notes:        m.Notes,
		Timestamp:    m.RecordedAt.UTC(),
		Sequence:     m.Seq,
	}
}

// ToDomainSaleSlice converts a slice of model Sales to a slice of domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}
