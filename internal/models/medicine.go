package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine represents a row of the medicines table.
type Medicine struct {
	MedicineID    string          `db:"medicine_id"`
	Name          string          `db:"name"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Quantity      int             `db:"quantity"`
	ExpiryDate    *time.Time      `db:"expiry_date"` // Nullable
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SellingPrice  decimal.Decimal `db:"selling_price"`
	AuditFields
}
