// Package sqlite implements the ledger store on a local SQLite database
// through sqlx and the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/medinventory_app/internal/models"
	"github.com/SscSPs/medinventory_app/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const medicineColumns = `medicine_id, name, category, description, quantity, expiry_date,
	purchase_price, selling_price, created_at, updated_at`

const stockEntryColumns = `seq, stock_entry_id, medicine_id, medicine_name, operation, quantity,
	previous_quantity, new_quantity, notes, sale_id, recorded_at`

const saleColumns = `seq, sale_id, medicine_id, medicine_name, unit_price, quantity, total_amount,
	sale_date, customer_name, notes, recorded_at`

// Store is a LedgerStore backed by SQLite. The sqlx handle should be limited
// to a single connection so transactions serialise.
type Store struct {
	ledgerRepository
	db *sqlx.DB
}

// NewStore wraps an open, migrated database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{ledgerRepository: ledgerRepository{q: db}, db: db}
}

var _ portsrepo.LedgerStore = (*Store)(nil)

// WithinTx implements portsrepo.TransactionManager.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, &ledgerRepository{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, apperrors.NewStorageError("failed to rollback transaction", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit transaction", err)
	}
	return nil
}

// ledgerRepository runs the ledger queries against the database or an open transaction.
type ledgerRepository struct {
	q sqlx.ExtContext
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

func (r *ledgerRepository) FindMedicineByID(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	var row models.Medicine
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE medicine_id = ?`
	if err := sqlx.GetContext(ctx, r.q, &row, query, medicineID); err != nil {
		return nil, mapError(err, "medicine %s", medicineID)
	}
	m := mapping.ToDomainMedicine(row)
	return &m, nil
}

func (r *ledgerRepository) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	var rows []models.Medicine
	query := `SELECT ` + medicineColumns + ` FROM medicines ORDER BY rowid`
	if err := sqlx.SelectContext(ctx, r.q, &rows, query); err != nil {
		return nil, mapError(err, "list medicines")
	}
	return mapping.ToDomainMedicineSlice(rows), nil
}

func (r *ledgerRepository) SaveMedicine(ctx context.Context, medicine domain.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES (:medicine_id, :name, :category, :description, :quantity, :expiry_date,
			:purchase_price, :selling_price, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, mapping.ToModelMedicine(medicine)); err != nil {
		return mapError(err, "save medicine %s", medicine.MedicineID)
	}
	return nil
}

func (r *ledgerRepository) UpdateMedicine(ctx context.Context, medicine domain.Medicine) error {
	query := `
		UPDATE medicines
		SET name = :name, category = :category, description = :description, quantity = :quantity,
			expiry_date = :expiry_date, purchase_price = :purchase_price,
			selling_price = :selling_price, updated_at = :updated_at
		WHERE medicine_id = :medicine_id`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, mapping.ToModelMedicine(medicine))
	if err != nil {
		return mapError(err, "update medicine %s", medicine.MedicineID)
	}
	return requireAffected(res, "medicine %s", medicine.MedicineID)
}

func (r *ledgerRepository) DeleteMedicine(ctx context.Context, medicineID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM medicines WHERE medicine_id = ?`, medicineID)
	if err != nil {
		return mapError(err, "delete medicine %s", medicineID)
	}
	return requireAffected(res, "medicine %s", medicineID)
}

func (r *ledgerRepository) ListStockEntries(ctx context.Context, filter portsrepo.StockEntryFilter) ([]domain.StockEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.MedicineID != nil {
		where = append(where, "medicine_id = ?")
		args = append(args, *filter.MedicineID)
	}
	if filter.Operation != nil {
		where = append(where, "operation = ?")
		args = append(args, string(*filter.Operation))
	}

	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq`

	var rows []models.StockEntry
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, mapError(err, "list stock entries")
	}
	return mapping.ToDomainStockEntrySlice(rows), nil
}

func (r *ledgerRepository) CountStockEntries(ctx context.Context, medicineID string) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, `SELECT COUNT(*) FROM stock_entries WHERE medicine_id = ?`, medicineID); err != nil {
		return 0, mapError(err, "count stock entries for %s", medicineID)
	}
	return count, nil
}

func (r *ledgerRepository) SaveStockEntry(ctx context.Context, entry *domain.StockEntry) error {
	query := `
		INSERT INTO stock_entries (stock_entry_id, medicine_id, medicine_name, operation, quantity,
			previous_quantity, new_quantity, notes, sale_id, recorded_at)
		VALUES (:stock_entry_id, :medicine_id, :medicine_name, :operation, :quantity,
			:previous_quantity, :new_quantity, :notes, :sale_id, :recorded_at)`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, mapping.ToModelStockEntry(*entry))
	if err != nil {
		return mapError(err, "save stock entry %s", entry.StockEntryID)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return apperrors.NewStorageError("read stock entry sequence", err)
	}
	entry.Sequence = seq
	return nil
}

func (r *ledgerRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	var args []any
	if filter.MedicineID != nil {
		query += ` WHERE medicine_id = ?`
		args = append(args, *filter.MedicineID)
	}
	query += ` ORDER BY seq`

	var rows []models.Sale
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, mapError(err, "list sales")
	}
	return mapping.ToDomainSaleSlice(rows), nil
}

func (r *ledgerRepository) SaveSale(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (sale_id, medicine_id, medicine_name, unit_price, quantity, total_amount,
			sale_date, customer_name, notes, recorded_at)
		VALUES (:sale_id, :medicine_id, :medicine_name, :unit_price, :quantity, :total_amount,
			:sale_date, :customer_name, :notes, :recorded_at)`
	res, err := sqlx.NamedExecContext(ctx, r.q, query, mapping.ToModelSale(*sale))
	if err != nil {
		return mapError(err, "save sale %s", sale.SaleID)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return apperrors.NewStorageError("read sale sequence", err)
	}
	sale.Sequence = seq
	return nil
}

func requireAffected(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("read affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrNotFound)
	}
	return nil
}

// mapError translates driver errors into the apperrors taxonomy.
func mapError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}
	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(sqliteErr.Error(), "UNIQUE") {
				return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
			}
		}
	}
	return apperrors.NewStorageError(msg, err)
}
