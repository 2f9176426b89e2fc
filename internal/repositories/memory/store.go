// Package memory implements the ledger store in process memory with an
// optional JSON snapshot file.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
)

// state is one consistent version of all three collections.
type state struct {
	medicines     map[string]domain.Medicine
	medicineOrder []string
	stockEntries  []domain.StockEntry
	sales         []domain.Sale
	sequence      int64
}

func newState() *state {
	return &state{medicines: make(map[string]domain.Medicine)}
}

func (s *state) clone() *state {
	c := &state{
		medicines:     make(map[string]domain.Medicine, len(s.medicines)),
		medicineOrder: append([]string(nil), s.medicineOrder...),
		stockEntries:  make([]domain.StockEntry, len(s.stockEntries)),
		sales:         append([]domain.Sale(nil), s.sales...),
		sequence:      s.sequence,
	}
	for id, m := range s.medicines {
		c.medicines[id] = copyMedicine(m)
	}
	for i, e := range s.stockEntries {
		c.stockEntries[i] = copyEntry(e)
	}
	return c
}

// copyMedicine and copyEntry detach the pointer fields so callers never share
// memory with stored records.
func copyMedicine(m domain.Medicine) domain.Medicine {
	if m.ExpiryDate != nil {
		expiry := *m.ExpiryDate
		m.ExpiryDate = &expiry
	}
	return m
}

func copyEntry(e domain.StockEntry) domain.StockEntry {
	if e.SaleID != nil {
		saleID := *e.SaleID
		e.SaleID = &saleID
	}
	return e
}

// Store is a LedgerStore kept in memory. Writers are serialized by a mutex;
// every transaction works on a staged copy that replaces the live state only
// after fn succeeds and the snapshot, if configured, has been written.
type Store struct {
	mu           sync.RWMutex
	current      *state
	snapshotPath string
}

// Option configures a Store.
type Option func(*Store)

// WithSnapshotFile persists the store to path after every committed transaction.
func WithSnapshotFile(path string) Option {
	return func(s *Store) {
		s.snapshotPath = path
	}
}

// NewStore creates an empty store.
func NewStore(options ...Option) *Store {
	s := &Store{current: newState()}
	for _, option := range options {
		option(s)
	}
	return s
}

// OpenStore creates a store backed by a snapshot file, loading it if it exists.
func OpenStore(path string) (*Store, error) {
	s := NewStore(WithSnapshotFile(path))
	loaded, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	if loaded != nil {
		s.current = loaded
	}
	return s, nil
}

var _ portsrepo.LedgerStore = (*Store)(nil)

// WithinTx implements portsrepo.TransactionManager.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("transaction not started", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.current.clone()
	if err := fn(ctx, &view{st: staged}); err != nil {
		return err
	}
	if s.snapshotPath != "" {
		if err := writeSnapshot(s.snapshotPath, staged); err != nil {
			return apperrors.NewStorageError("failed to persist snapshot", err)
		}
	}
	s.current = staged
	return nil
}

func (s *Store) read() *view {
	return &view{st: s.current}
}

// FindMedicineByID implements portsrepo.MedicineReader.
func (s *Store) FindMedicineByID(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().FindMedicineByID(ctx, medicineID)
}

// ListMedicines implements portsrepo.MedicineReader.
func (s *Store) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListMedicines(ctx)
}

// ListStockEntries implements portsrepo.StockEntryReader.
func (s *Store) ListStockEntries(ctx context.Context, filter portsrepo.StockEntryFilter) ([]domain.StockEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListStockEntries(ctx, filter)
}

// CountStockEntries implements portsrepo.StockEntryReader.
func (s *Store) CountStockEntries(ctx context.Context, medicineID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().CountStockEntries(ctx, medicineID)
}

// ListSales implements portsrepo.SaleReader.
func (s *Store) ListSales(ctx context.Context, filter portsrepo.SaleFilter) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read().ListSales(ctx, filter)
}

// SaveMedicine implements portsrepo.MedicineWriter as a single-statement transaction.
func (s *Store) SaveMedicine(ctx context.Context, medicine domain.Medicine) error {
	return s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return repo.SaveMedicine(ctx, medicine)
	})
}

// UpdateMedicine implements portsrepo.MedicineWriter.
func (s *Store) UpdateMedicine(ctx context.Context, medicine domain.Medicine) error {
	return s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return repo.UpdateMedicine(ctx, medicine)
	})
}

// DeleteMedicine implements portsrepo.MedicineWriter.
func (s *Store) DeleteMedicine(ctx context.Context, medicineID string) error {
	return s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return repo.DeleteMedicine(ctx, medicineID)
	})
}

// SaveStockEntry implements portsrepo.StockEntryWriter.
func (s *Store) SaveStockEntry(ctx context.Context, entry *domain.StockEntry) error {
	return s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return repo.SaveStockEntry(ctx, entry)
	})
}

// SaveSale implements portsrepo.SaleWriter.
func (s *Store) SaveSale(ctx context.Context, sale *domain.Sale) error {
	return s.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		return repo.SaveSale(ctx, sale)
	})
}

// view runs repository operations against one state without locking.
// The caller holds the store mutex.
type view struct {
	st *state
}

func (v *view) FindMedicineByID(_ context.Context, medicineID string) (*domain.Medicine, error) {
	m, ok := v.st.medicines[medicineID]
	if !ok {
		return nil, fmt.Errorf("medicine %s: %w", medicineID, apperrors.ErrNotFound)
	}
	m = copyMedicine(m)
	return &m, nil
}

func (v *view) ListMedicines(_ context.Context) ([]domain.Medicine, error) {
	out := make([]domain.Medicine, 0, len(v.st.medicineOrder))
	for _, id := range v.st.medicineOrder {
		out = append(out, copyMedicine(v.st.medicines[id]))
	}
	return out, nil
}

func (v *view) SaveMedicine(_ context.Context, medicine domain.Medicine) error {
	if _, exists := v.st.medicines[medicine.MedicineID]; exists {
		return fmt.Errorf("medicine %s: %w", medicine.MedicineID, apperrors.ErrDuplicate)
	}
	v.st.medicines[medicine.MedicineID] = copyMedicine(medicine)
	v.st.medicineOrder = append(v.st.medicineOrder, medicine.MedicineID)
	return nil
}

func (v *view) UpdateMedicine(_ context.Context, medicine domain.Medicine) error {
	if _, exists := v.st.medicines[medicine.MedicineID]; !exists {
		return fmt.Errorf("medicine %s: %w", medicine.MedicineID, apperrors.ErrNotFound)
	}
	v.st.medicines[medicine.MedicineID] = copyMedicine(medicine)
	return nil
}

func (v *view) DeleteMedicine(_ context.Context, medicineID string) error {
	if _, exists := v.st.medicines[medicineID]; !exists {
		return fmt.Errorf("medicine %s: %w", medicineID, apperrors.ErrNotFound)
	}
	delete(v.st.medicines, medicineID)
	order := v.st.medicineOrder[:0:0]
	for _, id := range v.st.medicineOrder {
		if id != medicineID {
			order = append(order, id)
		}
	}
	v.st.medicineOrder = order
	return nil
}

func (v *view) ListStockEntries(_ context.Context, filter portsrepo.StockEntryFilter) ([]domain.StockEntry, error) {
	out := make([]domain.StockEntry, 0)
	for _, e := range v.st.stockEntries {
		if filter.MedicineID != nil && e.MedicineID != *filter.MedicineID {
			continue
		}
		if filter.Operation != nil && e.Operation != *filter.Operation {
			continue
		}
		out = append(out, copyEntry(e))
	}
	return out, nil
}

func (v *view) CountStockEntries(_ context.Context, medicineID string) (int, error) {
	n := 0
	for _, e := range v.st.stockEntries {
		if e.MedicineID == medicineID {
			n++
		}
	}
	return n, nil
}

func (v *view) SaveStockEntry(_ context.Context, entry *domain.StockEntry) error {
	v.st.sequence++
	entry.Sequence = v.st.sequence
	v.st.stockEntries = append(v.st.stockEntries, copyEntry(*entry))
	return nil
}

func (v *view) ListSales(_ context.Context, filter portsrepo.SaleFilter) ([]domain.Sale, error) {
	out := make([]domain.Sale, 0, len(v.st.sales))
	for _, s := range v.st.sales {
		if filter.MedicineID != nil && s.MedicineID != *filter.MedicineID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (v *view) SaveSale(_ context.Context, sale *domain.Sale) error {
	v.st.sequence++
	sale.Sequence = v.st.sequence
	v.st.sales = append(v.st.sales, *sale)
	return nil
}

// snapshot is the on-disk form of a state.
type snapshot struct {
	Sequence     int64             `json:"sequence"`
	Medicines    []domain.Medicine `json:"medicines"`
	StockEntries []snapshotEntry   `json:"stockEntries"`
	Sales        []snapshotSale    `json:"sales"`
}

// Sequence is not serialized by the domain types, so the snapshot carries it alongside.
type snapshotEntry struct {
	domain.StockEntry
	Sequence int64 `json:"sequence"`
}

type snapshotSale struct {
	domain.Sale
	Sequence int64 `json:"sequence"`
}

func writeSnapshot(path string, st *state) error {
	snap := snapshot{
		Sequence:     st.sequence,
		Medicines:    make([]domain.Medicine, 0, len(st.medicineOrder)),
		StockEntries: make([]snapshotEntry, 0, len(st.stockEntries)),
		Sales:        make([]snapshotSale, 0, len(st.sales)),
	}
	for _, id := range st.medicineOrder {
		snap.Medicines = append(snap.Medicines, st.medicines[id])
	}
	for _, e := range st.stockEntries {
		snap.StockEntries = append(snap.StockEntries, snapshotEntry{StockEntry: e, Sequence: e.Sequence})
	}
	for _, s := range st.sales {
		snap.Sales = append(snap.Sales, snapshotSale{Sale: s, Sequence: s.Sequence})
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func readSnapshot(path string) (*state, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read snapshot", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, apperrors.NewStorageError("failed to decode snapshot", err)
	}

	st := newState()
	st.sequence = snap.Sequence
	for _, m := range snap.Medicines {
		st.medicines[m.MedicineID] = m
		st.medicineOrder = append(st.medicineOrder, m.MedicineID)
	}
	for _, e := range snap.StockEntries {
		e.StockEntry.Sequence = e.Sequence
		st.stockEntries = append(st.stockEntries, e.StockEntry)
	}
	for _, s := range snap.Sales {
		s.Sale.Sequence = s.Sequence
		st.sales = append(st.sales, s.Sale)
	}
	return st, nil
}
