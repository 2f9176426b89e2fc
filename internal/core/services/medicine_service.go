package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medinventory_app/internal/core/ports/services"
	"github.com/SscSPs/medinventory_app/internal/dto"
	"github.com/google/uuid"
)

// medicineService implements the MedicineSvcFacade interface
type medicineService struct {
	BaseService
	store portsrepo.LedgerStore
	lock  *sync.Mutex
}

// NewMedicineService creates a new medicine service with the provided options
func NewMedicineService(store portsrepo.LedgerStore, options ...ServiceOption) portssvc.MedicineSvcFacade {
	return &medicineService{
		BaseService: newBaseService(options),
		store:       store,
		lock:        ledgerLock(store),
	}
}

var _ portssvc.MedicineSvcFacade = (*medicineService)(nil)

func (s *medicineService) CreateMedicine(ctx context.Context, req dto.CreateMedicineRequest) (*domain.Medicine, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)

	if err := validateStruct(req); err != nil {
		s.LogWarn(ctx, err, "Rejected medicine creation")
		return nil, err
	}
	if err := requirePositivePrice("purchasePrice", req.PurchasePrice); err != nil {
		return nil, err
	}
	if err := requirePositivePrice("sellingPrice", req.SellingPrice); err != nil {
		return nil, err
	}

	now := s.Now()
	medicine := domain.Medicine{
		MedicineID:    uuid.NewString(),
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		PurchasePrice: *req.PurchasePrice,
		SellingPrice:  *req.SellingPrice,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if req.Quantity != nil {
		medicine.Quantity = *req.Quantity
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		expiry, err := dto.ParseDate("expiryDate", *req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		medicine.ExpiryDate = &expiry
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.store.SaveMedicine(ctx, medicine); err != nil {
		s.LogFailure(ctx, err, "Failed to save medicine", slog.String("medicine_name", medicine.Name))
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}

	s.LogInfo(ctx, "Medicine created",
		slog.String("medicine_id", medicine.MedicineID),
		slog.Int("quantity", medicine.Quantity))
	return &medicine, nil
}

func (s *medicineService) GetMedicine(ctx context.Context, medicineID string) (*domain.Medicine, error) {
	medicine, err := s.store.FindMedicineByID(ctx, medicineID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get medicine", slog.String("medicine_id", medicineID))
		return nil, fmt.Errorf("failed to get medicine %s: %w", medicineID, err)
	}
	return medicine, nil
}

func (s *medicineService) ListMedicines(ctx context.Context) ([]domain.Medicine, error) {
	medicines, err := s.store.ListMedicines(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list medicines")
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	if medicines == nil {
		return []domain.Medicine{}, nil
	}
	return medicines, nil
}

// SearchMedicines returns every medicine when query is blank.
func (s *medicineService) SearchMedicines(ctx context.Context, query string) ([]domain.Medicine, error) {
	medicines, err := s.ListMedicines(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return medicines, nil
	}

	matches := make([]domain.Medicine, 0)
	for _, m := range medicines {
		if strings.Contains(strings.ToLower(m.Name), needle) ||
			strings.Contains(strings.ToLower(m.Category), needle) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func (s *medicineService) UpdateMedicine(ctx context.Context, medicineID string, req dto.UpdateMedicineRequest) (*domain.Medicine, error) {
	if err := validateStruct(req); err != nil {
		s.LogWarn(ctx, err, "Rejected medicine update", slog.String("medicine_id", medicineID))
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	var updated domain.Medicine
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo portsrepo.LedgerRepository) error {
		current, err := repo.FindMedicineByID(ctx, medicineID)
		if err != nil {
			return err
		}
		updated = *current

		if err := applyMedicineUpdate(&updated, req); err != nil {
			return err
		}

		if req.Quantity != nil && *req.Quantity != current.Quantity {
			count, err := repo.CountStockEntries(ctx, medicineID)
			if err != nil {
				return err
			}
			if count > 0 {
				return apperrors.NewValidationError("quantity",
					"cannot be edited once stock history exists; use the add or reduce stock operations")
			}
			updated.Quantity = *req.Quantity
		}

		updated.UpdatedAt = s.Now()
		return repo.UpdateMedicine(ctx, updated)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update medicine", slog.String("medicine_id", medicineID))
		return nil, fmt.Errorf("failed to update medicine %s: %w", medicineID, err)
	}

	s.LogInfo(ctx, "Medicine updated", slog.String("medicine_id", medicineID))
	return &updated, nil
}

// applyMedicineUpdate copies the provided descriptive fields onto m.
func applyMedicineUpdate(m *domain.Medicine, req dto.UpdateMedicineRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperrors.NewValidationError("name", "is required")
		}
		m.Name = name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return apperrors.NewValidationError("category", "is required")
		}
		m.Category = category
	}
	if req.Description != nil {
		m.Description = strings.TrimSpace(*req.Description)
	}
	if req.PurchasePrice != nil {
		if err := requirePositivePrice("purchasePrice", req.PurchasePrice); err != nil {
			return err
		}
		m.PurchasePrice = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		if err := requirePositivePrice("sellingPrice", req.SellingPrice); err != nil {
			return err
		}
		m.SellingPrice = *req.SellingPrice
	}
	switch {
	case req.ClearExpiryDate:
		m.ExpiryDate = nil
	case req.ExpiryDate != nil:
		expiry, err := dto.ParseDate("expiryDate", *req.ExpiryDate)
		if err != nil {
			return err
		}
		m.ExpiryDate = &expiry
	}
	return nil
}

// DeleteMedicine removes the medicine. Its stock and sales history stay in the ledgers.
func (s *medicineService) DeleteMedicine(ctx context.Context, medicineID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.store.DeleteMedicine(ctx, medicineID); err != nil {
		s.LogFailure(ctx, err, "Failed to delete medicine", slog.String("medicine_id", medicineID))
		return fmt.Errorf("failed to delete medicine %s: %w", medicineID, err)
	}
	s.LogInfo(ctx, "Medicine deleted", slog.String("medicine_id", medicineID))
	return nil
}
