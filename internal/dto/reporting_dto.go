package dto

import (
	"github.com/SscSPs/medinventory_app/internal/core/domain"
)

// AlertsResponse represents every alert list at once
type AlertsResponse struct {
	LowStockThreshold int                `json:"lowStockThreshold"`
	ExpiryWindowDays  int                `json:"expiryWindowDays"`
	LowStock          []MedicineResponse `json:"lowStock"`
	ExpiringSoon      []MedicineResponse `json:"expiringSoon"`
	Expired           []MedicineResponse `json:"expired"`
}

// ToAlertsResponse converts a domain.AlertSummary to AlertsResponse DTO
func ToAlertsResponse(s *domain.AlertSummary) AlertsResponse {
	return AlertsResponse{
		LowStockThreshold: s.LowStockThreshold,
		ExpiryWindowDays:  s.ExpiryWindowDays,
		LowStock:          ToListMedicineResponse(s.LowStock),
		ExpiringSoon:      ToListMedicineResponse(s.ExpiringSoon),
		Expired:           ToListMedicineResponse(s.Expired),
	}
}

// AlertQueryParams carries the optional overrides of the alert endpoints.
type AlertQueryParams struct {
	Threshold *int `form:"threshold"`
	Days      *int `form:"days"`
}

// TopSellingParams carries the optional limit of the top selling endpoint.
type TopSellingParams struct {
	Limit *int `form:"limit"`
}
