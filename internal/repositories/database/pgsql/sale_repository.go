package pgsql

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/medinventory_app/internal/models"
	"github.com/SscSPs/medinventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `seq, sale_id, medicine_id, medicine_name, unit_price, quantity, total_amount,
	sale_date, customer_name, notes, recorded_at`

func (r *ledgerRepository) ListSales(ctx context.Context, filter portsrepo.SaleFilter) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	var args []any
	if filter.MedicineID != nil {
		query += ` WHERE medicine_id = $1`
		args = append(args, *filter.MedicineID)
	}
	query += ` ORDER BY seq`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list sales")
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, mapError(err, "scan sales")
	}
	return mapping.ToDomainSaleSlice(list), nil
}

// SaveSale appends a sale and sets its Sequence from the generated seq.
func (r *ledgerRepository) SaveSale(ctx context.Context, sale *domain.Sale) error {
	s := mapping.ToModelSale(*sale)
	query := `
		INSERT INTO sales (sale_id, medicine_id, medicine_name, unit_price, quantity, total_amount,
			sale_date, customer_name, notes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.db.QueryRow(ctx, query,
		s.SaleID, s.MedicineID, s.MedicineName, s.UnitPrice, s.Quantity, s.TotalAmount,
		s.SaleDate, s.CustomerName, s.Notes, s.RecordedAt,
	).Scan(&sale.Sequence)
	if err != nil {
		return mapError(err, "save sale %s", s.SaleID)
	}
	return nil
}
