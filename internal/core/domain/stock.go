package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
)

// StockOperation indicates whether a stock entry added or removed units.
type StockOperation string

const (
	StockAdd    StockOperation = "add"
	StockReduce StockOperation = "reduce"
)

// IsValid reports whether o is a known operation.
func (o StockOperation) IsValid() bool {
	return o == StockAdd || o == StockReduce
}

// StockEntry is an immutable record of a single quantity change on a medicine.
// MedicineID is a weak reference: entries outlive the medicine they describe.
type StockEntry struct {
	StockEntryID     string         `json:"stockEntryID"`
	MedicineID       string         `json:"medicineID"`
	MedicineName     string         `json:"medicineName"`
	Operation        StockOperation `json:"operation"`
	Quantity         int            `json:"quantity"`
	PreviousQuantity int            `json:"previousQuantity"`
	NewQuantity      int            `json:"newQuantity"`
	Notes            string         `json:"notes"`
	SaleID           *string        `json:"saleID,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
	// Sequence is assigned by storage and orders entries that share a timestamp.
	Sequence int64 `json:"-"`
}

// Delta returns the signed change this entry applied to the on-hand quantity.
func (e StockEntry) Delta() int {
	if e.Operation == StockReduce {
		return -e.Quantity
	}
	return e.Quantity
}

// Validate checks the arithmetic of the entry before it is persisted.
func (e StockEntry) Validate() error {
	if !e.Operation.IsValid() {
		return apperrors.NewValidationError("operation", fmt.Sprintf("must be %q or %q", StockAdd, StockReduce))
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidQuantity, e.Quantity)
	}
	if e.PreviousQuantity < 0 || e.NewQuantity < 0 {
		return apperrors.NewValidationError("newQuantity", "must not be negative")
	}
	if e.NewQuantity != e.PreviousQuantity+e.Delta() {
		return apperrors.NewValidationError("newQuantity",
			fmt.Sprintf("%d does not follow from %d %s %d", e.NewQuantity, e.PreviousQuantity, e.Operation, e.Quantity))
	}
	return nil
}

// StockChange is the outcome of a single stock adjustment.
type StockChange struct {
	Entry    StockEntry
	Medicine Medicine
}
