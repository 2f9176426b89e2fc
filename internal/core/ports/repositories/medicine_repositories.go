package repositories

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// MedicineReader defines read operations for medicine data
type MedicineReader interface {
	// FindMedicineByID retrieves a medicine by its identifier. Returns apperrors.ErrNotFound if absent.
	FindMedicineByID(ctx context.Context, medicineID string) (*domain.Medicine, error)

	// ListMedicines retrieves every medicine ordered by creation time.
	ListMedicines(ctx context.Context) ([]domain.Medicine, error)
}

// MedicineWriter defines write operations for medicine data
type MedicineWriter interface {
	// SaveMedicine persists a new medicine. Returns apperrors.ErrDuplicate if the ID exists.
	SaveMedicine(ctx context.Context, medicine domain.Medicine) error

	// UpdateMedicine replaces a stored medicine. Returns apperrors.ErrNotFound if absent.
	UpdateMedicine(ctx context.Context, medicine domain.Medicine) error

	// DeleteMedicine removes a medicine. History entries referring to it are kept.
	DeleteMedicine(ctx context.Context, medicineID string) error
}

// MedicineRepositoryFacade combines all medicine-related repository interfaces
type MedicineRepositoryFacade interface {
	MedicineReader
	MedicineWriter
}
