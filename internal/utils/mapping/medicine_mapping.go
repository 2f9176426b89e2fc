package mapping

import (
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/models"
)

// ToModelMedicine converts a domain Medicine to a model Medicine
func ToModelMedicine(d domain.Medicine) models.Medicine {
	return models.Medicine{
		MedicineID:    d.MedicineID,
		Name:          d.Name,
		Category:      d.Category,
		Description:   d.Description,
		Quantity:      d.Quantity,
		ExpiryDate:    toDatePtr(d.ExpiryDate),
		PurchasePrice: d.PurchasePrice,
		SellingPrice:  d.SellingPrice,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMedicine converts a model Medicine to a domain Medicine
func ToDomainMedicine(m models.Medicine) domain.Medicine {
	return domain.Medicine{
		MedicineID:    m.MedicineID,
		Name:          m.Name,
		Category:      m.Category,
		Description:   m.Description,
		Quantity:      m.Quantity,
		ExpiryDate:    toDatePtr(m.ExpiryDate),
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMedicineSlice converts a slice of model Medicines to a slice of domain Medicines
func ToDomainMedicineSlice(ms []models.Medicine) []domain.Medicine {
	ds := make([]domain.Medicine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMedicine(m)
	}
	return ds
}

// toDatePtr normalises an optional calendar date to midnight UTC.
func toDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOf(t.UTC())
	return &d
}
