package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMedicineMapping_NormalisesTimes(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 10, 14, 30, 0, 0, ist)

	m := ToModelMedicine(domain.Medicine{
		MedicineID:    "m1",
		Name:          "Paracetamol",
		ExpiryDate:    &expiry,
		PurchasePrice: decimal.RequireFromString("1.25"),
		SellingPrice:  decimal.RequireFromString("2.50"),
		AuditFields:   domain.AuditFields{CreatedAt: created, UpdatedAt: created},
	})
	assert.Equal(t, time.UTC, m.CreatedAt.Location())
	assert.True(t, m.CreatedAt.Equal(created))

	d := ToDomainMedicine(m)
	assert.Equal(t, "m1", d.MedicineID)
	assert.Equal(t, expiry, *d.ExpiryDate)
	assert.True(t, d.SellingPrice.Equal(decimal.RequireFromString("2.5")))
}

func TestMedicineMapping_NilExpiry(t *testing.T) {
	d := ToDomainMedicine(models.Medicine{MedicineID: "m2"})
	assert.Nil(t, d.ExpiryDate)
}

func TestStockEntryMapping_SaleID(t *testing.T) {
	saleID := "s1"
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	withSale := ToModelStockEntry(domain.StockEntry{StockEntryID: "e1", Operation: domain.StockReduce, SaleID: &saleID, Timestamp: ts, Sequence: 7})
	assert.True(t, withSale.SaleID.Valid)
	assert.Equal(t, "reduce", withSale.Operation)

	back := ToDomainStockEntry(withSale)
	assert.Equal(t, &saleID, back.SaleID)
	assert.Equal(t, int64(7), back.Sequence)
	assert.Equal(t, ts, back.Timestamp)

	manual := ToDomainStockEntry(ToModelStockEntry(domain.StockEntry{StockEntryID: "e2", Operation: domain.StockAdd}))
	assert.Nil(t, manual.SaleID)
}

func TestSaleMapping_SaleDateIsCalendarDay(t *testing.T) {
	m := ToModelSale(domain.Sale{SaleID: "s1", SaleDate: time.Date(2026, 3, 10, 18, 45, 0, 0, time.UTC)})
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), m.SaleDate)
}
