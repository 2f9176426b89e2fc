package services

import (
	"context"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/SscSPs/medinventory_app/internal/dto"
)

// MedicineReaderSvc defines read operations for medicine data
type MedicineReaderSvc interface {
	// GetMedicine retrieves a medicine by its identifier.
	GetMedicine(ctx context.Context, medicineID string) (*domain.Medicine, error)

	// ListMedicines retrieves every medicine in creation order.
	ListMedicines(ctx context.Context) ([]domain.Medicine, error)

	// SearchMedicines matches query case-insensitively against name and category.
	SearchMedicines(ctx context.Context, query string) ([]domain.Medicine, error)
}

// MedicineWriterSvc defines write operations for medicine data
type MedicineWriterSvc interface {
	CreateMedicine(ctx context.Context, req dto.CreateMedicineRequest) (*domain.Medicine, error)

	// UpdateMedicine edits descriptive fields. Quantity can only change here
	// while the medicine has no stock history.
	UpdateMedicine(ctx context.Context, medicineID string, req dto.UpdateMedicineRequest) (*domain.Medicine, error)

	DeleteMedicine(ctx context.Context, medicineID string) error
}

// MedicineSvcFacade combines all medicine-related service interfaces
type MedicineSvcFacade interface {
	MedicineReaderSvc
	MedicineWriterSvc
}
