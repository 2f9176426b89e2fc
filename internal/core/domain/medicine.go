package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is a stocked product. Quantity is the authoritative on-hand count.
type Medicine struct {
	MedicineID    string          `json:"medicineID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	AuditFields
}

// InStock reports whether any units are on hand.
func (m Medicine) InStock() bool {
	return m.Quantity > 0
}

// IsLowStock reports whether the on-hand quantity is strictly below threshold.
func (m Medicine) IsLowStock(threshold int) bool {
	return m.Quantity < threshold
}

// IsExpired reports whether the expiry date is strictly before today.
func (m Medicine) IsExpired(today time.Time) bool {
	if m.ExpiryDate == nil {
		return false
	}
	return DateOf(*m.ExpiryDate).Before(DateOf(today))
}

// ExpiresWithin reports whether today <= expiry <= today+windowDays.
// Medicines that have already expired are not included.
func (m Medicine) ExpiresWithin(today time.Time, windowDays int) bool {
	if m.ExpiryDate == nil {
		return false
	}
	day := DateOf(today)
	expiry := DateOf(*m.ExpiryDate)
	return !expiry.Before(day) && !expiry.After(day.AddDate(0, 0, windowDays))
}
