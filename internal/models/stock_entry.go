package models

import (
	"database/sql"
	"time"
)

// StockEntry represents a row of the append-only stock_entries table.
type StockEntry struct {
	Seq              int64          `db:"seq"`
	StockEntryID     string         `db:"stock_entry_id"`
	MedicineID       string         `db:"medicine_id"`
	MedicineName     string         `db:"medicine_name"`
	Operation        string         `db:"operation"`
	Quantity         int            `db:"quantity"`
	PreviousQuantity int            `db:"previous_quantity"`
	NewQuantity      int            `db:"new_quantity"`
	Notes            string         `db:"notes"`
	SaleID           sql.NullString `db:"sale_id"`
	RecordedAt       time.Time      `db:"recorded_at"`
}
