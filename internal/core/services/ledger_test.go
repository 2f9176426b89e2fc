package services_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/core/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/SscSPs/medinventory_app/internal/platform/config"
	"github.com/SscSPs/medinventory_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeClock is a settable time source shared by the services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// --- Test Suite Setup ---

type LedgerTestSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *fakeClock
	store    portsrepo.LedgerStore
	services *portssvc.ServiceContainer
}

func (suite *LedgerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = &fakeClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	suite.store = memory.NewStore()
	cfg := &config.Config{LowStockThreshold: 10, ExpiryWindowDays: 30, TopSellingLimit: 5}
	suite.services = services.NewServiceContainer(cfg, suite.store, services.WithClock(suite.clock.Now))
}

func (suite *LedgerTestSuite) createMedicine(name string, qty int, sellingPrice string) *domain.Medicine {
	m, err := suite.services.Medicine.CreateMedicine(suite.ctx, dto.CreateMedicineRequest{
		Name:          name,
		Category:      "General",
		Quantity:      intPtr(qty),
		PurchasePrice: decPtr("1.00"),
		SellingPrice:  decPtr(sellingPrice),
	})
	suite.Require().NoError(err)
	return m
}

func (suite *LedgerTestSuite) quantityOf(id string) int {
	m, err := suite.services.Medicine.GetMedicine(suite.ctx, id)
	suite.Require().NoError(err)
	return m.Quantity
}

func (suite *LedgerTestSuite) history(id string) []domain.StockEntry {
	entries, err := suite.services.Stock.History(suite.ctx, dto.StockHistoryFilter{MedicineID: &id})
	suite.Require().NoError(err)
	return entries
}

// --- Stock ledger ---

func (suite *LedgerTestSuite) TestAddStock_FromZero() {
	m := suite.createMedicine("Amoxicillin", 0, "2.00")

	change, err := suite.services.Stock.AddStock(suite.ctx, m.MedicineID, 20, "restock")
	suite.Require().NoError(err)

	suite.Equal(20, change.Medicine.Quantity)
	suite.Equal(20, suite.quantityOf(m.MedicineID))

	entries := suite.history(m.MedicineID)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.StockAdd, entries[0].Operation)
	suite.Equal(20, entries[0].Quantity)
	suite.Equal(0, entries[0].PreviousQuantity)
	suite.Equal(20, entries[0].NewQuantity)
	suite.Equal("restock", entries[0].Notes)
	suite.Equal("Amoxicillin", entries[0].MedicineName)
	suite.Nil(entries[0].SaleID)
}

func (suite *LedgerTestSuite) TestReduceStock_Insufficient() {
	m := suite.createMedicine("Ibuprofen", 5, "2.00")

	_, err := suite.services.Stock.ReduceStock(suite.ctx, m.MedicineID, 10, "damaged")

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientStock)
	var insufficient *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal(10, insufficient.Requested)
	suite.Equal(5, insufficient.Available)
	suite.Equal(5, suite.quantityOf(m.MedicineID))
	suite.Empty(suite.history(m.MedicineID))
}

func (suite *LedgerTestSuite) TestReduceStock_ToExactlyZero() {
	m := suite.createMedicine("Cetirizine", 4, "2.00")

	change, err := suite.services.Stock.ReduceStock(suite.ctx, m.MedicineID, 4, "expired batch")
	suite.Require().NoError(err)
	suite.Equal(0, change.Entry.NewQuantity)
	suite.Equal(0, suite.quantityOf(m.MedicineID))
}

func (suite *LedgerTestSuite) TestStockAdjustment_InvalidQuantity() {
	m := suite.createMedicine("Loratadine", 4, "2.00")

	for _, qty := range []int{0, -3} {
		_, err := suite.services.Stock.AddStock(suite.ctx, m.MedicineID, qty, "")
		suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
		_, err = suite.services.Stock.ReduceStock(suite.ctx, m.MedicineID, qty, "")
		suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	}
	suite.Empty(suite.history(m.MedicineID))
}

func (suite *LedgerTestSuite) TestStockAdjustment_UnknownMedicine() {
	_, err := suite.services.Stock.AddStock(suite.ctx, "missing", 1, "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTestSuite) TestHistory_NewestFirstAndFilters() {
	a := suite.createMedicine("A", 0, "2.00")
	b := suite.createMedicine("B", 0, "2.00")

	_, err := suite.services.Stock.AddStock(suite.ctx, a.MedicineID, 10, "first")
	suite.Require().NoError(err)
	// Same timestamp: recording order breaks the tie.
	_, err = suite.services.Stock.AddStock(suite.ctx, b.MedicineID, 5, "second")
	suite.Require().NoError(err)
	suite.clock.Advance(time.Minute)
	_, err = suite.services.Stock.ReduceStock(suite.ctx, a.MedicineID, 3, "third")
	suite.Require().NoError(err)

	all, err := suite.services.Stock.History(suite.ctx, dto.StockHistoryFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal([]string{"third", "second", "first"}, []string{all[0].Notes, all[1].Notes, all[2].Notes})

	reduce := domain.StockReduce
	reductions, err := suite.services.Stock.History(suite.ctx, dto.StockHistoryFilter{Operation: &reduce})
	suite.Require().NoError(err)
	suite.Require().Len(reductions, 1)
	suite.Equal("third", reductions[0].Notes)

	suite.Len(suite.history(b.MedicineID), 1)

	bogus := domain.StockOperation("adjust")
	_, err = suite.services.Stock.History(suite.ctx, dto.StockHistoryFilter{Operation: &bogus})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Sales ledger ---

func (suite *LedgerTestSuite) TestRecordSale_ReducesStockAndSnapshotsPrice() {
	m := suite.createMedicine("Paracetamol", 10, "2.50")

	sale, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{
		MedicineID:   m.MedicineID,
		Quantity:     3,
		CustomerName: "  Jane  ",
	})
	suite.Require().NoError(err)

	suite.Equal(7, suite.quantityOf(m.MedicineID))
	suite.Equal(3, sale.Quantity)
	suite.True(decimal.RequireFromString("7.5").Equal(sale.TotalAmount), "total %s", sale.TotalAmount)
	suite.True(decimal.RequireFromString("2.50").Equal(sale.UnitPrice))
	suite.Equal("Paracetamol", sale.MedicineName)
	suite.Equal("Jane", sale.CustomerName)
	suite.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), sale.SaleDate)

	entries := suite.history(m.MedicineID)
	suite.Require().Len(entries, 1)
	suite.Equal(domain.StockReduce, entries[0].Operation)
	suite.Equal(3, entries[0].Quantity)
	suite.Equal("Sale: 3 units", entries[0].Notes)
	suite.Require().NotNil(entries[0].SaleID)
	suite.Equal(sale.SaleID, *entries[0].SaleID)

	// Later price changes do not rewrite the recorded sale.
	_, err = suite.services.Medicine.UpdateMedicine(suite.ctx, m.MedicineID, dto.UpdateMedicineRequest{SellingPrice: decPtr("9.99")})
	suite.Require().NoError(err)
	sales, err := suite.services.Sales.ListSales(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(sales, 1)
	suite.True(decimal.RequireFromString("2.50").Equal(sales[0].UnitPrice))
}

func (suite *LedgerTestSuite) TestRecordSale_Rejections() {
	m := suite.createMedicine("Aspirin", 2, "1.00")

	_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 3})
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)

	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 0})
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)

	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: "missing", Quantity: 1})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{Quantity: 1})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 1, SaleDate: strPtr("yesterday")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	sales, err := suite.services.Sales.ListSales(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(sales)
	suite.Empty(suite.history(m.MedicineID))
	suite.Equal(2, suite.quantityOf(m.MedicineID))
}

func (suite *LedgerTestSuite) TestMonthlyRollup_TwoMonths() {
	m := suite.createMedicine("Zinc", 100, "2.00")

	suite.clock.Set(time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC))
	_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 4})
	suite.Require().NoError(err)
	suite.clock.Set(time.Date(2026, time.February, 2, 12, 0, 0, 0, time.UTC))
	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 6})
	suite.Require().NoError(err)
	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 1})
	suite.Require().NoError(err)

	months, err := suite.services.Sales.MonthlyRollup(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(months, 2)
	suite.Equal("2026-01", months[0].Month)
	suite.Equal(1, months[0].TotalSales)
	suite.Equal(4, months[0].TotalQuantity)
	suite.True(decimal.NewFromInt(8).Equal(months[0].TotalRevenue))
	suite.Equal("2026-02", months[1].Month)
	suite.Equal(2, months[1].TotalSales)
	suite.Equal(7, months[1].TotalQuantity)
	suite.True(decimal.NewFromInt(14).Equal(months[1].TotalRevenue))

	summary, err := suite.services.Sales.Summary(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(3, summary.TotalSales)
	suite.Equal(months[0].TotalQuantity+months[1].TotalQuantity, summary.TotalQuantity)
	suite.True(months[0].TotalRevenue.Add(months[1].TotalRevenue).Equal(summary.TotalRevenue))
}

func (suite *LedgerTestSuite) TestSalesByDateRange_Inclusive() {
	m := suite.createMedicine("Vitamin C", 100, "1.00")
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)

	for _, ts := range []time.Time{start.Add(-time.Second), start, end, end.Add(time.Second)} {
		suite.clock.Set(ts)
		_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 1})
		suite.Require().NoError(err)
	}

	sales, err := suite.services.Sales.SalesByDateRange(suite.ctx, start, end)
	suite.Require().NoError(err)
	suite.Require().Len(sales, 2)
	suite.True(sales[0].Timestamp.Equal(start))
	suite.True(sales[1].Timestamp.Equal(end))

	_, err = suite.services.Sales.SalesByDateRange(suite.ctx, end, start)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestTopSelling_OrderAndTies() {
	a := suite.createMedicine("A", 100, "1.00")
	b := suite.createMedicine("B", 100, "3.00")
	c := suite.createMedicine("C", 100, "1.00")
	d := suite.createMedicine("D", 100, "1.00")

	record := func(id string, qty int) {
		_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: id, Quantity: qty})
		suite.Require().NoError(err)
	}
	record(a.MedicineID, 5)
	record(c.MedicineID, 5)
	record(b.MedicineID, 5)
	record(d.MedicineID, 9)
	record(a.MedicineID, 1)

	top, err := suite.services.Sales.TopSelling(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(top, 4)
	suite.Equal(d.MedicineID, top[0].MedicineID)
	suite.Equal(a.MedicineID, top[1].MedicineID)
	suite.Equal(6, top[1].TotalQuantity)
	suite.Equal(2, top[1].SalesCount)
	// B and C tie on quantity; B earned more.
	suite.Equal(b.MedicineID, top[2].MedicineID)
	suite.Equal(c.MedicineID, top[3].MedicineID)

	limited, err := suite.services.Sales.TopSelling(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.Len(limited, 2)

	_, err = suite.services.Sales.TopSelling(suite.ctx, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Alerts ---

func (suite *LedgerTestSuite) TestLowStock_ThresholdBoundary() {
	m := suite.createMedicine("Saline", 8, "1.00")

	low, err := suite.services.Alert.LowStock(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(low, 1)
	suite.Equal(m.MedicineID, low[0].MedicineID)

	_, err = suite.services.Stock.AddStock(suite.ctx, m.MedicineID, 2, "top up")
	suite.Require().NoError(err)
	low, err = suite.services.Alert.LowStock(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(low)

	_, err = suite.services.Alert.LowStock(suite.ctx, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestExpiringSoon_Window() {
	today := suite.clock.Now()
	in40 := today.AddDate(0, 0, 40).Format(dto.DateLayout)
	in20 := today.AddDate(0, 0, 20).Format(dto.DateLayout)

	far, err := suite.services.Medicine.CreateMedicine(suite.ctx, dto.CreateMedicineRequest{
		Name: "Far", Category: "X", ExpiryDate: &in40, PurchasePrice: decPtr("1"), SellingPrice: decPtr("2"),
	})
	suite.Require().NoError(err)

	soon, err := suite.services.Alert.ExpiringSoon(suite.ctx, 30)
	suite.Require().NoError(err)
	suite.Empty(soon)

	_, err = suite.services.Medicine.UpdateMedicine(suite.ctx, far.MedicineID, dto.UpdateMedicineRequest{ExpiryDate: &in20})
	suite.Require().NoError(err)
	soon, err = suite.services.Alert.ExpiringSoon(suite.ctx, 30)
	suite.Require().NoError(err)
	suite.Require().Len(soon, 1)
	suite.Equal(far.MedicineID, soon[0].MedicineID)

	_, err = suite.services.Alert.ExpiringSoon(suite.ctx, -1)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerTestSuite) TestExpiringSoon_ExcludesAlreadyExpired() {
	yesterday := suite.clock.Now().AddDate(0, 0, -1).Format(dto.DateLayout)
	todayStr := suite.clock.Now().Format(dto.DateLayout)

	expired, err := suite.services.Medicine.CreateMedicine(suite.ctx, dto.CreateMedicineRequest{
		Name: "Old", Category: "X", ExpiryDate: &yesterday, PurchasePrice: decPtr("1"), SellingPrice: decPtr("2"),
	})
	suite.Require().NoError(err)
	expiresToday, err := suite.services.Medicine.CreateMedicine(suite.ctx, dto.CreateMedicineRequest{
		Name: "Today", Category: "X", ExpiryDate: &todayStr, PurchasePrice: decPtr("1"), SellingPrice: decPtr("2"),
	})
	suite.Require().NoError(err)

	soon, err := suite.services.Alert.ExpiringSoon(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Require().Len(soon, 1)
	suite.Equal(expiresToday.MedicineID, soon[0].MedicineID)

	gone, err := suite.services.Alert.Expired(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(gone, 1)
	suite.Equal(expired.MedicineID, gone[0].MedicineID)

	all, err := suite.services.Alert.AllAlerts(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(all.Expired, 1)
	suite.Len(all.ExpiringSoon, 1)
	suite.Len(all.LowStock, 2)
	suite.Equal(10, all.LowStockThreshold)
	suite.Equal(30, all.ExpiryWindowDays)
}

// --- Reconciliation and deletion ---

func (suite *LedgerTestSuite) TestReconcile_AfterMixedActivity() {
	m := suite.createMedicine("Insulin", 12, "5.00")

	_, err := suite.services.Stock.AddStock(suite.ctx, m.MedicineID, 8, "")
	suite.Require().NoError(err)
	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 5})
	suite.Require().NoError(err)
	_, err = suite.services.Stock.ReduceStock(suite.ctx, m.MedicineID, 2, "broken vial")
	suite.Require().NoError(err)

	rec, err := suite.services.Stock.Reconcile(suite.ctx, m.MedicineID)
	suite.Require().NoError(err)
	suite.Equal(12, rec.InitialQuantity)
	suite.Equal(8, rec.TotalAdded)
	suite.Equal(7, rec.TotalReduced)
	suite.Equal(13, rec.ExpectedQuantity)
	suite.Equal(13, rec.ActualQuantity)
	suite.Equal(3, rec.EntryCount)
	suite.Zero(rec.ChainBreaks)
	suite.True(rec.Balanced)
	suite.False(rec.MedicineDeleted)
}

func (suite *LedgerTestSuite) TestReconcile_NoHistory() {
	m := suite.createMedicine("Fresh", 7, "1.00")

	rec, err := suite.services.Stock.Reconcile(suite.ctx, m.MedicineID)
	suite.Require().NoError(err)
	suite.Equal(7, rec.InitialQuantity)
	suite.Equal(7, rec.ExpectedQuantity)
	suite.True(rec.Balanced)

	_, err = suite.services.Stock.Reconcile(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerTestSuite) TestDeleteMedicine_KeepsHistory() {
	m := suite.createMedicine("Discontinued", 10, "2.00")
	sale, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 4})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.services.Medicine.DeleteMedicine(suite.ctx, m.MedicineID))
	_, err = suite.services.Medicine.GetMedicine(suite.ctx, m.MedicineID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	entries := suite.history(m.MedicineID)
	suite.Require().Len(entries, 1)
	suite.Equal("Discontinued", entries[0].MedicineName)

	sales, err := suite.services.Sales.ListSales(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(sales, 1)
	suite.Equal(sale.SaleID, sales[0].SaleID)

	rec, err := suite.services.Stock.Reconcile(suite.ctx, m.MedicineID)
	suite.Require().NoError(err)
	suite.True(rec.MedicineDeleted)
	suite.Equal(6, rec.ActualQuantity)
	suite.True(rec.Balanced)

	_, err = suite.services.Stock.AddStock(suite.ctx, m.MedicineID, 1, "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(suite.services.Medicine.DeleteMedicine(suite.ctx, m.MedicineID), apperrors.ErrNotFound)
}

// --- Reports ---

func (suite *LedgerTestSuite) TestDashboard() {
	a := suite.createMedicine("A", 20, "2.00")
	suite.createMedicine("B", 0, "3.00")

	_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: a.MedicineID, Quantity: 5})
	suite.Require().NoError(err)

	report, err := suite.services.Reporting.Dashboard(suite.ctx)
	suite.Require().NoError(err)

	suite.Equal(2, report.Inventory.TotalMedicines)
	suite.Equal(15, report.Inventory.TotalQuantity)
	suite.Equal(1, report.Inventory.InStock)
	suite.Equal(1, report.Inventory.OutOfStock)
	suite.True(decimal.NewFromInt(15).Equal(report.Inventory.InventoryValue))
	suite.True(decimal.NewFromInt(30).Equal(report.Inventory.PotentialSalesValue))
	suite.True(decimal.NewFromInt(15).Equal(report.Inventory.PotentialProfit))
	suite.Equal(1, report.Sales.TotalSales)
	suite.True(decimal.NewFromInt(10).Equal(report.Sales.TotalRevenue))
	suite.Equal(1, report.LowStockCount)
	suite.Require().Len(report.TopSelling, 1)
	suite.Equal(a.MedicineID, report.TopSelling[0].MedicineID)
	suite.Equal(suite.clock.Now(), report.GeneratedAt)
}

// --- Reads ---

func (suite *LedgerTestSuite) TestReads_RepeatableWithoutMutation() {
	a := suite.createMedicine("Cough Syrup", 20, "2.50")
	b := suite.createMedicine("Antacid", 5, "1.00")
	_, err := suite.services.Stock.AddStock(suite.ctx, b.MedicineID, 10, "restock")
	suite.Require().NoError(err)

	suite.clock.Set(time.Date(2026, time.January, 20, 10, 0, 0, 0, time.UTC))
	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: a.MedicineID, Quantity: 3})
	suite.Require().NoError(err)
	suite.clock.Set(time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC))
	_, err = suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: b.MedicineID, Quantity: 4})
	suite.Require().NoError(err)
	_, err = suite.services.Stock.ReduceStock(suite.ctx, a.MedicineID, 2, "damaged")
	suite.Require().NoError(err)

	sales1, err := suite.services.Sales.ListSales(suite.ctx)
	suite.Require().NoError(err)
	sales2, err := suite.services.Sales.ListSales(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(sales1, 2)
	suite.Equal(sales1, sales2)

	history1, err := suite.services.Stock.History(suite.ctx, dto.StockHistoryFilter{})
	suite.Require().NoError(err)
	history2, err := suite.services.Stock.History(suite.ctx, dto.StockHistoryFilter{})
	suite.Require().NoError(err)
	suite.Len(history1, 4)
	suite.Equal(history1, history2)

	months1, err := suite.services.Sales.MonthlyRollup(suite.ctx)
	suite.Require().NoError(err)
	months2, err := suite.services.Sales.MonthlyRollup(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(months1, 2)
	suite.Equal(months1, months2)

	top1, err := suite.services.Sales.TopSelling(suite.ctx, 5)
	suite.Require().NoError(err)
	top2, err := suite.services.Sales.TopSelling(suite.ctx, 5)
	suite.Require().NoError(err)
	suite.Len(top1, 2)
	suite.Equal(top1, top2)

	medicines1, err := suite.services.Medicine.ListMedicines(suite.ctx)
	suite.Require().NoError(err)
	medicines2, err := suite.services.Medicine.ListMedicines(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(medicines1, medicines2)
}

func (suite *LedgerTestSuite) TestReads_LogAtDebugLevel() {
	m := suite.createMedicine("Eye Drops", 5, "3.00")
	_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 1})
	suite.Require().NoError(err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := middleware.WithLogger(suite.ctx, logger)

	_, err = suite.services.Stock.History(ctx, dto.StockHistoryFilter{})
	suite.Require().NoError(err)
	_, err = suite.services.Sales.ListSales(ctx)
	suite.Require().NoError(err)

	suite.Contains(buf.String(), `"msg":"Stock history loaded","entries":1`)
	suite.Contains(buf.String(), `"msg":"Sales loaded","sales":1`)
}

// --- Concurrency ---

func (suite *LedgerTestSuite) TestConcurrentSales_NeverOversell() {
	m := suite.createMedicine("Scarce", 10, "1.00")

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.services.Sales.RecordSale(suite.ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 1})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(10, succeeded)
	suite.Equal(0, suite.quantityOf(m.MedicineID))
	suite.Len(suite.history(m.MedicineID), 10)

	rec, err := suite.services.Stock.Reconcile(suite.ctx, m.MedicineID)
	suite.Require().NoError(err)
	suite.True(rec.Balanced)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
