package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/medinventory_app/internal/core/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/SscSPs/medinventory_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLedgerStore is a mock type for the LedgerStore interface
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) FindMedicineByID(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	args := m.Called(ctx, medicineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Medicine), args.Error(1)
}

func (m *MockLedgerStore) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Medicine), args.Error(1)
}

func (m *MockLedgerStore) SaveMedicine(ctx context.Context, medicine domain.Medicine) error {
	return m.Called(ctx, medicine).Error(0)
}

func (m *MockLedgerStore) UpdateMedicine(ctx context.Context, medicine domain.Medicine) error {
	return m.Called(ctx, medicine).Error(0)
}

func (m *MockLedgerStore) DeleteMedicine(ctx context.Context, medicineID string) error {
	return m.Called(ctx, medicineID).Error(0)
}

func (m *MockLedgerStore) ListStockEntries(ctx context.Context, filter portsrepo.StockEntryFilter) ([]domain.StockEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockEntry), args.Error(1)
}

func (m *MockLedgerStore) CountStockEntries(ctx context.Context, medicineID string) (int, error) {
	args := m.Called(ctx, medicineID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerStore) SaveStockEntry(ctx context.Context, entry *domain.StockEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLedgerStore) ListSales(ctx context.Context, filter portsrepo.SaleFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockLedgerStore) SaveSale(ctx context.Context, sale *domain.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

// WithinTx runs fn against the mock itself unless an error is configured.
func (m *MockLedgerStore) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

var errDiskGone = errors.New("disk gone")

func TestMedicineService_StorageFailures(t *testing.T) {
	ctx := context.Background()
	store := new(MockLedgerStore)
	svc := services.NewMedicineService(store)
	storageErr := apperrors.NewStorageError("write failed", errDiskGone)

	store.On("SaveMedicine", ctx, mock.AnythingOfType("domain.Medicine")).Return(storageErr).Once()
	_, err := svc.CreateMedicine(ctx, dto.CreateMedicineRequest{
		Name: "X", Category: "Y", PurchasePrice: decPtr("1"), SellingPrice: decPtr("2"),
	})
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.ErrorIs(t, err, errDiskGone)
	assert.True(t, apperrors.IsRetryable(err))

	store.On("ListMedicines", ctx).Return(nil, storageErr).Once()
	_, err = svc.ListMedicines(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	store.AssertExpectations(t)
}

func TestMedicineService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	store := new(MockLedgerStore)
	svc := services.NewMedicineService(store)

	tests := []struct {
		name  string
		req   dto.CreateMedicineRequest
		field string
	}{
		{name: "blank name", req: dto.CreateMedicineRequest{Name: "   ", Category: "Y", PurchasePrice: decPtr("1"), SellingPrice: decPtr("2")}, field: "name"},
		{name: "missing category", req: dto.CreateMedicineRequest{Name: "X", PurchasePrice: decPtr("1"), SellingPrice: decPtr("2")}, field: "category"},
		{name: "negative quantity", req: dto.CreateMedicineRequest{Name: "X", Category: "Y", Quantity: intPtr(-1), PurchasePrice: decPtr("1"), SellingPrice: decPtr("2")}, field: "quantity"},
		{name: "missing purchase price", req: dto.CreateMedicineRequest{Name: "X", Category: "Y", SellingPrice: decPtr("2")}, field: "purchasePrice"},
		{name: "zero selling price", req: dto.CreateMedicineRequest{Name: "X", Category: "Y", PurchasePrice: decPtr("1"), SellingPrice: decPtr("0")}, field: "sellingPrice"},
		{name: "bad expiry date", req: dto.CreateMedicineRequest{Name: "X", Category: "Y", ExpiryDate: strPtr("31/12/2026"), PurchasePrice: decPtr("1"), SellingPrice: decPtr("2")}, field: "expiryDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMedicine(ctx, tt.req)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	// Nothing reached storage.
	store.AssertNotCalled(t, "SaveMedicine", mock.Anything, mock.Anything)
}

func TestMedicineService_QuantityEditLockedByHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	medicines := services.NewMedicineService(store)
	stock := services.NewStockService(store)

	m, err := medicines.CreateMedicine(ctx, dto.CreateMedicineRequest{
		Name: "Editable", Category: "Y", Quantity: intPtr(3), PurchasePrice: decPtr("1"), SellingPrice: decPtr("2"),
	})
	require.NoError(t, err)

	// No history yet: direct edits are allowed.
	updated, err := medicines.UpdateMedicine(ctx, m.MedicineID, dto.UpdateMedicineRequest{Quantity: intPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)

	_, err = stock.AddStock(ctx, m.MedicineID, 1, "")
	require.NoError(t, err)

	_, err = medicines.UpdateMedicine(ctx, m.MedicineID, dto.UpdateMedicineRequest{Quantity: intPtr(50), Name: strPtr("Renamed")})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Field)

	// The rejected update changed nothing, not even the name.
	current, err := medicines.GetMedicine(ctx, m.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, 7, current.Quantity)
	assert.Equal(t, "Editable", current.Name)

	// Restating the current quantity is not an edit.
	renamed, err := medicines.UpdateMedicine(ctx, m.MedicineID, dto.UpdateMedicineRequest{Quantity: intPtr(7), Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Name)

	cleared, err := medicines.UpdateMedicine(ctx, m.MedicineID, dto.UpdateMedicineRequest{ClearExpiryDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.ExpiryDate)

	_, err = medicines.UpdateMedicine(ctx, "missing", dto.UpdateMedicineRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMedicineService_Search(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewMedicineService(store)
	for _, nc := range [][2]string{{"Paracetamol", "Analgesic"}, {"Amoxicillin", "Antibiotic"}, {"Ibuprofen", "analgesic"}} {
		_, err := svc.CreateMedicine(ctx, dto.CreateMedicineRequest{
			Name: nc[0], Category: nc[1], PurchasePrice: decPtr("1"), SellingPrice: decPtr("2"),
		})
		require.NoError(t, err)
	}

	found, err := svc.SearchMedicines(ctx, "ANALG")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Paracetamol", found[0].Name)
	assert.Equal(t, "Ibuprofen", found[1].Name)

	found, err = svc.SearchMedicines(ctx, "amox")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = svc.SearchMedicines(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

// failingSaleRepo fails the final write of a sale transaction.
type failingSaleRepo struct {
	portsrepo.LedgerRepository
}

func (r failingSaleRepo) SaveSale(context.Context, *domain.Sale) error {
	return apperrors.NewStorageError("sale insert failed", errDiskGone)
}

// failingSaleStore hands out failingSaleRepo inside transactions.
type failingSaleStore struct {
	*memory.Store
}

func (s *failingSaleStore) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return s.Store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return fn(ctx, failingSaleRepo{repo})
	})
}

func TestRecordSale_FailureLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	store := &failingSaleStore{Store: inner}
	clock := services.WithClock(func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) })
	medicines := services.NewMedicineService(store, clock)
	sales := services.NewSalesService(store, clock)

	m, err := medicines.CreateMedicine(ctx, dto.CreateMedicineRequest{
		Name: "Atomic", Category: "Y", Quantity: intPtr(10), PurchasePrice: decPtr("1"), SellingPrice: decPtr("2.5"),
	})
	require.NoError(t, err)

	_, err = sales.RecordSale(ctx, dto.RecordSaleRequest{MedicineID: m.MedicineID, Quantity: 3})
	require.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	current, err := inner.FindMedicineByID(ctx, m.MedicineID)
	require.NoError(t, err)
	assert.Equal(t, 10, current.Quantity)

	entries, err := inner.ListStockEntries(ctx, portsrepo.StockEntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	recorded, err := inner.ListSales(ctx, portsrepo.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestStockService_TxUnavailable(t *testing.T) {
	ctx := context.Background()
	store := new(MockLedgerStore)
	svc := services.NewStockService(store)

	store.On("WithinTx", ctx).Return(apperrors.NewStorageError("begin failed", context.DeadlineExceeded)).Once()

	_, err := svc.AddStock(ctx, "m1", 5, "")
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	store.AssertExpectations(t)
}

func TestStockService_UpdateFailureSkipsEntry(t *testing.T) {
	ctx := context.Background()
	store := new(MockLedgerStore)
	svc := services.NewStockService(store)

	medicine := &domain.Medicine{MedicineID: "m1", Name: "Mocked", Quantity: 2, SellingPrice: decimal.NewFromInt(1)}
	store.On("WithinTx", ctx).Return(nil).Once()
	store.On("FindMedicineByID", ctx, "m1").Return(medicine, nil).Once()
	store.On("UpdateMedicine", ctx, mock.MatchedBy(func(m domain.Medicine) bool { return m.Quantity == 7 })).
		Return(apperrors.NewStorageError("update failed", errDiskGone)).Once()

	_, err := svc.AddStock(ctx, "m1", 5, "")
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	store.AssertNotCalled(t, "SaveStockEntry", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAlertService_UsesConfiguredDefaults(t *testing.T) {
	ctx := context.Background()
	store := new(MockLedgerStore)
	svc := services.NewAlertService(store, services.AlertConfig{LowStockThreshold: 0, ExpiryWindowDays: -1})

	low, window := svc.Defaults()
	assert.Equal(t, services.DefaultLowStockThreshold, low)
	assert.Equal(t, services.DefaultExpiryWindowDays, window)

	store.On("ListMedicines", ctx).Return(nil, apperrors.NewStorageError("read failed", errDiskGone)).Once()
	_, err := svc.AllAlerts(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}
