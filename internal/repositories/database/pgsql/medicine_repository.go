package pgsql

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/models"
	"github.com/SscSPs/medinventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const medicineColumns = `medicine_id, name, category, description, quantity, expiry_date,
	purchase_price, selling_price, created_at, updated_at`

// FindMedicineByID retrieves a medicine by its ID, locking the row when run inside WithinTx.
func (r *ledgerRepository) FindMedicineByID(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE medicine_id = $1`
	if r.lockRows {
		query += ` FOR UPDATE`
	}

	rows, err := r.db.Query(ctx, query, medicineID)
	if err != nil {
		return nil, mapError(err, "medicine %s", medicineID)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Medicine])
	if err != nil {
		return nil, mapError(err, "medicine %s", medicineID)
	}
	m := mapping.ToDomainMedicine(row)
	return &m, nil
}

// ListMedicines retrieves every medicine in insertion order.
func (r *ledgerRepository) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	rows, err := r.db.Query(ctx, `SELECT `+medicineColumns+` FROM medicines ORDER BY seq`)
	if err != nil {
		return nil, mapError(err, "list medicines")
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Medicine])
	if err != nil {
		return nil, mapError(err, "scan medicines")
	}
	return mapping.ToDomainMedicineSlice(list), nil
}

// SaveMedicine inserts a new medicine.
func (r *ledgerRepository) SaveMedicine(ctx context.Context, medicine domain.Medicine) error {
	m := mapping.ToModelMedicine(medicine)
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		m.MedicineID, m.Name, m.Category, m.Description, m.Quantity, m.ExpiryDate,
		m.PurchasePrice, m.SellingPrice, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return mapError(err, "save medicine %s", m.MedicineID)
	}
	return nil
}

// UpdateMedicine replaces every mutable column of a medicine.
func (r *ledgerRepository) UpdateMedicine(ctx context.Context, medicine domain.Medicine) error {
	m := mapping.ToModelMedicine(medicine)
	query := `
		UPDATE medicines
		SET name = $2, category = $3, description = $4, quantity = $5, expiry_date = $6,
			purchase_price = $7, selling_price = $8, updated_at = $9
		WHERE medicine_id = $1`
	tag, err := r.db.Exec(ctx, query,
		m.MedicineID, m.Name, m.Category, m.Description, m.Quantity, m.ExpiryDate,
		m.PurchasePrice, m.SellingPrice, m.UpdatedAt)
	if err != nil {
		return mapError(err, "update medicine %s", m.MedicineID)
	}
	return requireAffected(tag, "medicine %s", m.MedicineID)
}

// DeleteMedicine removes a medicine. Stock entries and sales keep their copy of its name.
func (r *ledgerRepository) DeleteMedicine(ctx context.Context, medicineID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM medicines WHERE medicine_id = $1`, medicineID)
	if err != nil {
		return mapError(err, "delete medicine %s", medicineID)
	}
	return requireAffected(tag, "medicine %s", medicineID)
}
