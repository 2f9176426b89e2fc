package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySales aggregates the sales recorded in one calendar month.
type MonthlySales struct {
	Month         string          `json:"month"` // YYYY-MM
	TotalSales    int             `json:"totalSales"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// TopSellingMedicine aggregates all sales of one medicine.
type TopSellingMedicine struct {
	MedicineID    string          `json:"medicineID"`
	MedicineName  string          `json:"medicineName"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	SalesCount    int             `json:"salesCount"`
}

// SalesSummary aggregates every sale ever recorded.
type SalesSummary struct {
	TotalSales    int             `json:"totalSales"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// InventoryValuation is the priced view of the current stock.
type InventoryValuation struct {
	TotalMedicines      int             `json:"totalMedicines"`
	TotalQuantity       int             `json:"totalQuantity"`
	InStock             int             `json:"inStock"`
	OutOfStock          int             `json:"outOfStock"`
	InventoryValue      decimal.Decimal `json:"inventoryValue"`
	PotentialSalesValue decimal.Decimal `json:"potentialSalesValue"`
	PotentialProfit     decimal.Decimal `json:"potentialProfit"`
}

// AlertSummary groups the medicines needing attention.
type AlertSummary struct {
	LowStockThreshold int        `json:"lowStockThreshold"`
	ExpiryWindowDays  int        `json:"expiryWindowDays"`
	LowStock          []Medicine `json:"lowStock"`
	ExpiringSoon      []Medicine `json:"expiringSoon"`
	Expired           []Medicine `json:"expired"`
}

// DashboardReport bundles the headline numbers shown on the dashboard.
type DashboardReport struct {
	GeneratedAt   time.Time            `json:"generatedAt"`
	Inventory     InventoryValuation   `json:"inventory"`
	Sales         SalesSummary         `json:"sales"`
	LowStockCount int                  `json:"lowStockCount"`
	ExpiringCount int                  `json:"expiringCount"`
	ExpiredCount  int                  `json:"expiredCount"`
	TopSelling    []TopSellingMedicine `json:"topSelling"`
}

// StockReconciliation replays the stock history of one medicine.
type StockReconciliation struct {
	MedicineID       string `json:"medicineID"`
	MedicineName     string `json:"medicineName"`
	MedicineDeleted  bool   `json:"medicineDeleted"`
	EntryCount       int    `json:"entryCount"`
	InitialQuantity  int    `json:"initialQuantity"`
	TotalAdded       int    `json:"totalAdded"`
	TotalReduced     int    `json:"totalReduced"`
	ExpectedQuantity int    `json:"expectedQuantity"`
	ActualQuantity   int    `json:"actualQuantity"`
	// ChainBreaks counts entries whose PreviousQuantity differs from the prior entry's NewQuantity.
	ChainBreaks int  `json:"chainBreaks"`
	Balanced    bool `json:"balanced"`
}
