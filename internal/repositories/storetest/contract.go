// Package storetest holds the behaviour every LedgerStore adapter must share.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) portsrepo.LedgerStore

// Base is the reference time used by the contract. It has no sub-microsecond
// part so every backend stores it exactly.
var Base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

var errAbort = errors.New("abort")

// Run executes the store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("medicine round trip", func(t *testing.T) { medicineRoundTrip(t, newStore(t)) })
	t.Run("medicine errors", func(t *testing.T) { medicineErrors(t, newStore(t)) })
	t.Run("list keeps creation order", func(t *testing.T) { listOrder(t, newStore(t)) })
	t.Run("transaction commits", func(t *testing.T) { txCommits(t, newStore(t)) })
	t.Run("transaction rolls back", func(t *testing.T) { txRollsBack(t, newStore(t)) })
	t.Run("stock entry filters", func(t *testing.T) { stockFilters(t, newStore(t)) })
	t.Run("sales round trip", func(t *testing.T) { salesRoundTrip(t, newStore(t)) })
	t.Run("history survives deletion", func(t *testing.T) { historySurvivesDeletion(t, newStore(t)) })
}

// NewMedicine builds a valid medicine with a fresh id.
func NewMedicine(name string, qty int) domain.Medicine {
	return domain.Medicine{
		MedicineID:    uuid.NewString(),
		Name:          name,
		Category:      "Analgesic",
		Description:   "500mg tablets",
		Quantity:      qty,
		PurchasePrice: decimal.RequireFromString("1.25"),
		SellingPrice:  decimal.RequireFromString("2.50"),
		AuditFields:   domain.AuditFields{CreatedAt: Base, UpdatedAt: Base},
	}
}

// NewEntry builds an add or reduce entry for m that starts at m.Quantity.
func NewEntry(m domain.Medicine, op domain.StockOperation, qty int, at time.Time) domain.StockEntry {
	e := domain.StockEntry{
		StockEntryID:     uuid.NewString(),
		MedicineID:       m.MedicineID,
		MedicineName:     m.Name,
		Operation:        op,
		Quantity:         qty,
		PreviousQuantity: m.Quantity,
		Notes:            "restock",
		Timestamp:        at,
	}
	e.NewQuantity = e.PreviousQuantity + e.Delta()
	return e
}

func medicineRoundTrip(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	m := NewMedicine("Paracetamol", 12)
	m.ExpiryDate = &expiry
	require.NoError(t, store.SaveMedicine(ctx, m))

	got, err := store.FindMedicineByID(ctx, m.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Category, got.Category)
	assert.Equal(t, m.Description, got.Description)
	assert.Equal(t, 12, got.Quantity)
	require.NotNil(t, got.ExpiryDate)
	assert.True(t, expiry.Equal(*got.ExpiryDate), "expiry %s", got.ExpiryDate)
	assert.True(t, m.PurchasePrice.Equal(got.PurchasePrice))
	assert.True(t, m.SellingPrice.Equal(got.SellingPrice))
	assert.True(t, Base.Equal(got.CreatedAt))

	got.Quantity = 20
	got.ExpiryDate = nil
	got.UpdatedAt = Base.Add(time.Hour)
	require.NoError(t, store.UpdateMedicine(ctx, *got))

	updated, err := store.FindMedicineByID(ctx, m.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Quantity)
	assert.Nil(t, updated.ExpiryDate)
	assert.True(t, Base.Add(time.Hour).Equal(updated.UpdatedAt))
}

func medicineErrors(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	m := NewMedicine("Ibuprofen", 1)
	require.NoError(t, store.SaveMedicine(ctx, m))

	assert.ErrorIs(t, store.SaveMedicine(ctx, m), apperrors.ErrDuplicate)

	_, err := store.FindMedicineByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ghost := NewMedicine("Ghost", 0)
	assert.ErrorIs(t, store.UpdateMedicine(ctx, ghost), apperrors.ErrNotFound)
	assert.ErrorIs(t, store.DeleteMedicine(ctx, ghost.MedicineID), apperrors.ErrNotFound)
}

func listOrder(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	names := []string{"Zinc", "Amoxicillin", "Metformin"}
	for _, name := range names {
		require.NoError(t, store.SaveMedicine(ctx, NewMedicine(name, 0)))
	}

	list, err := store.ListMedicines(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, name := range names {
		assert.Equal(t, name, list[i].Name)
	}
}

func txCommits(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	m := NewMedicine("Cetirizine", 5)
	require.NoError(t, store.SaveMedicine(ctx, m))

	entry := NewEntry(m, domain.StockAdd, 10, Base)
	err := store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		current, err := repo.FindMedicineByID(ctx, m.MedicineID)
		if err != nil {
			return err
		}
		current.Quantity = entry.NewQuantity
		if err := repo.UpdateMedicine(ctx, *current); err != nil {
			return err
		}
		return repo.SaveStockEntry(ctx, &entry)
	})
	require.NoError(t, err)
	assert.Positive(t, entry.Sequence)

	got, err := store.FindMedicineByID(ctx, m.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity)

	entries, err := store.ListStockEntries(ctx, portsrepo.StockEntryFilter{MedicineID: &m.MedicineID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.StockEntryID, entries[0].StockEntryID)
	assert.Equal(t, entry.Sequence, entries[0].Sequence)
	assert.Equal(t, 5, entries[0].PreviousQuantity)
	assert.Equal(t, 15, entries[0].NewQuantity)
	assert.Nil(t, entries[0].SaleID)
	assert.True(t, Base.Equal(entries[0].Timestamp))
}

func txRollsBack(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	m := NewMedicine("Aspirin", 8)
	require.NoError(t, store.SaveMedicine(ctx, m))

	saleID := uuid.NewString()
	err := store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		current, err := repo.FindMedicineByID(ctx, m.MedicineID)
		if err != nil {
			return err
		}
		current.Quantity = 0
		if err := repo.UpdateMedicine(ctx, *current); err != nil {
			return err
		}
		entry := NewEntry(m, domain.StockReduce, 8, Base)
		entry.SaleID = &saleID
		if err := repo.SaveStockEntry(ctx, &entry); err != nil {
			return err
		}
		if err := repo.SaveSale(ctx, &domain.Sale{
			SaleID: saleID, MedicineID: m.MedicineID, MedicineName: m.Name,
			UnitPrice: m.SellingPrice, Quantity: 8, TotalAmount: domain.SaleTotal(m.SellingPrice, 8),
			SaleDate: domain.DateOf(Base), Timestamp: Base,
		}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := store.FindMedicineByID(ctx, m.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)

	entries, err := store.ListStockEntries(ctx, portsrepo.StockEntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	sales, err := store.ListSales(ctx, portsrepo.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func stockFilters(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	a := NewMedicine("A", 0)
	b := NewMedicine("B", 0)
	require.NoError(t, store.SaveMedicine(ctx, a))
	require.NoError(t, store.SaveMedicine(ctx, b))

	save := func(e domain.StockEntry) int64 {
		require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
			return repo.SaveStockEntry(ctx, &e)
		}))
		return e.Sequence
	}

	s1 := save(NewEntry(a, domain.StockAdd, 10, Base))
	a.Quantity = 10
	s2 := save(NewEntry(b, domain.StockAdd, 4, Base))
	s3 := save(NewEntry(a, domain.StockReduce, 3, Base))
	assert.Less(t, s1, s2)
	assert.Less(t, s2, s3)

	all, err := store.ListStockEntries(ctx, portsrepo.StockEntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{s1, s2, s3}, []int64{all[0].Sequence, all[1].Sequence, all[2].Sequence})

	reduce := domain.StockReduce
	onlyA, err := store.ListStockEntries(ctx, portsrepo.StockEntryFilter{MedicineID: &a.MedicineID, Operation: &reduce})
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, 10, onlyA[0].PreviousQuantity)
	assert.Equal(t, 7, onlyA[0].NewQuantity)

	count, err := store.CountStockEntries(ctx, a.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = store.CountStockEntries(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func salesRoundTrip(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	m := NewMedicine("Omeprazole", 10)
	other := NewMedicine("Loratadine", 10)

	sale := domain.Sale{
		SaleID:       uuid.NewString(),
		MedicineID:   m.MedicineID,
		MedicineName: m.Name,
		UnitPrice:    decimal.RequireFromString("3.75"),
		Quantity:     4,
		TotalAmount:  decimal.RequireFromString("15.00"),
		SaleDate:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		CustomerName: "R. Iyer",
		Notes:        "walk-in",
		Timestamp:    Base,
	}
	second := sale
	second.SaleID = uuid.NewString()
	second.MedicineID = other.MedicineID
	second.Timestamp = Base.Add(time.Minute)

	for _, s := range []*domain.Sale{&sale, &second} {
		require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
			return repo.SaveSale(ctx, s)
		}))
	}
	assert.Less(t, sale.Sequence, second.Sequence)

	all, err := store.ListSales(ctx, portsrepo.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, sale.SaleID, all[0].SaleID)

	filtered, err := store.ListSales(ctx, portsrepo.SaleFilter{MedicineID: &m.MedicineID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	got := filtered[0]
	assert.Equal(t, sale.MedicineName, got.MedicineName)
	assert.True(t, sale.UnitPrice.Equal(got.UnitPrice))
	assert.True(t, sale.TotalAmount.Equal(got.TotalAmount))
	assert.Equal(t, 4, got.Quantity)
	assert.True(t, sale.SaleDate.Equal(got.SaleDate), "sale date %s", got.SaleDate)
	assert.Equal(t, "R. Iyer", got.CustomerName)
	assert.Equal(t, "walk-in", got.Notes)
	assert.True(t, Base.Equal(got.Timestamp))
	assert.Equal(t, sale.Sequence, got.Sequence)
}

func historySurvivesDeletion(t *testing.T, store portsrepo.LedgerStore) {
	ctx := context.Background()
	m := NewMedicine("Discontinued", 0)
	require.NoError(t, store.SaveMedicine(ctx, m))
	entry := NewEntry(m, domain.StockAdd, 2, Base)
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return repo.SaveStockEntry(ctx, &entry)
	}))

	require.NoError(t, store.DeleteMedicine(ctx, m.MedicineID))

	_, err := store.FindMedicineByID(ctx, m.MedicineID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	entries, err := store.ListStockEntries(ctx, portsrepo.StockEntryFilter{MedicineID: &m.MedicineID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Discontinued", entries[0].MedicineName)
}
