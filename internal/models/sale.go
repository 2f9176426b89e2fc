package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a row of the append-only sales table.
type Sale struct {
	Seq          int64           `db:"seq"`
	SaleID       string          `db:"sale_id"`
	MedicineID   string          `db:"medicine_id"`
	MedicineName string          `db:"medicine_name"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	Quantity     int             `db:"quantity"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	SaleDate     time.Time       `db:"sale_date"`
	CustomerName string          `db:"customer_name"`
	Notes        string          `db:"notes"`
	RecordedAt   time.Time       `db:"recorded_at"`
}
