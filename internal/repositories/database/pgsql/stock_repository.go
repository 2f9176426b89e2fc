package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/medinventory_app/internal/models"
	"github.com/SscSPs/medinventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const stockEntryColumns = `seq, stock_entry_id, medicine_id, medicine_name, operation, quantity,
	previous_quantity, new_quantity, notes, sale_id, recorded_at`

func (r *ledgerRepository) ListStockEntries(ctx context.Context, filter portsrepo.StockEntryFilter) ([]domain.StockEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.MedicineID != nil {
		args = append(args, *filter.MedicineID)
		where = append(where, fmt.Sprintf("medicine_id = $%d", len(args)))
	}
	if filter.Operation != nil {
		args = append(args, string(*filter.Operation))
		where = append(where, fmt.Sprintf("operation = $%d", len(args)))
	}

	query := `SELECT ` + stockEntryColumns + ` FROM stock_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list stock entries")
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StockEntry])
	if err != nil {
		return nil, mapError(err, "scan stock entries")
	}
	return mapping.ToDomainStockEntrySlice(list), nil
}

func (r *ledgerRepository) CountStockEntries(ctx context.Context, medicineID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_entries WHERE medicine_id = $1`, medicineID).Scan(&count)
	if err != nil {
		return 0, mapError(err, "count stock entries for %s", medicineID)
	}
	return count, nil
}

// SaveStockEntry appends an entry and sets its Sequence from the generated seq.
func (r *ledgerRepository) SaveStockEntry(ctx context.Context, entry *domain.StockEntry) error {
	e := mapping.ToModelStockEntry(*entry)
	query := `
		INSERT INTO stock_entries (stock_entry_id, medicine_id, medicine_name, operation, quantity,
			previous_quantity, new_quantity, notes, sale_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.db.QueryRow(ctx, query,
		e.StockEntryID, e.MedicineID, e.MedicineName, e.Operation, e.Quantity,
		e.PreviousQuantity, e.NewQuantity, e.Notes, e.SaleID, e.RecordedAt,
	).Scan(&entry.Sequence)
	if err != nil {
		return mapError(err, "save stock entry %s", e.StockEntryID)
	}
	return nil
}
