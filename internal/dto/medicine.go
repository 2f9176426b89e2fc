package dto

import (
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMedicineRequest defines the data needed to create a new medicine.
type CreateMedicineRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Category      string           `json:"category" validate:"required,max=100"`
	Description   string           `json:"description" validate:"max=2000"`
	Quantity      *int             `json:"quantity" validate:"omitempty,min=0"` // Optional, defaults to 0
	ExpiryDate    *string          `json:"expiryDate"`                          // Optional, YYYY-MM-DD
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
}

// UpdateMedicineRequest defines the data allowed for updating a medicine.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateMedicineRequest struct {
	Name            *string          `json:"name" validate:"omitempty,max=200"`
	Category        *string          `json:"category" validate:"omitempty,max=100"`
	Description     *string          `json:"description" validate:"omitempty,max=2000"`
	Quantity        *int             `json:"quantity" validate:"omitempty,min=0"` // Only allowed while no stock history exists
	ExpiryDate      *string          `json:"expiryDate"`
	ClearExpiryDate bool             `json:"clearExpiryDate"`
	PurchasePrice   *decimal.Decimal `json:"purchasePrice"`
	SellingPrice    *decimal.Decimal `json:"sellingPrice"`
}

// MedicineResponse defines the data returned for a medicine.
type MedicineResponse struct {
	MedicineID    string          `json:"medicineID"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	InStock       bool            `json:"inStock"`
	ExpiryDate    *string         `json:"expiryDate,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ListMedicinesParams defines query parameters for listing medicines.
type ListMedicinesParams struct {
	Query string `form:"q"`
}

// ToMedicineResponse converts a domain.Medicine to MedicineResponse DTO
func ToMedicineResponse(m *domain.Medicine) MedicineResponse {
	resp := MedicineResponse{
		MedicineID:    m.MedicineID,
		Name:          m.Name,
		Category:      m.Category,
		Description:   m.Description,
		Quantity:      m.Quantity,
		InStock:       m.InStock(),
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.ExpiryDate != nil {
		s := m.ExpiryDate.Format(DateLayout)
		resp.ExpiryDate = &s
	}
	return resp
}

// ToListMedicineResponse converts a slice of domain.Medicine to a slice of MedicineResponse DTOs
func ToListMedicineResponse(medicines []domain.Medicine) []MedicineResponse {
	res := make([]MedicineResponse, len(medicines))
	for i := range medicines {
		res[i] = ToMedicineResponse(&medicines[i])
	}
	return res
}
