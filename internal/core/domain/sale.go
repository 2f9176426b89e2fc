package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a transaction. Name and unit price are
// snapshots taken when the sale was recorded.
type Sale struct {
	SaleID       string          `json:"saleID"`
	MedicineID   string          `json:"medicineID"`
	MedicineName string          `json:"medicineName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	SaleDate     time.Time       `json:"saleDate"`
	CustomerName string          `json:"customerName"`
	Notes        string          `json:"notes"`
	Timestamp    time.Time       `json:"timestamp"`
	Sequence     int64           `json:"-"`
}

// SaleTotal returns unitPrice * quantity.
func SaleTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
