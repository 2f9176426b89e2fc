package pricing

import (
	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UnitProfit returns sellingPrice - purchasePrice.
func UnitProfit(purchasePrice, sellingPrice decimal.Decimal) decimal.Decimal {
	return sellingPrice.Sub(purchasePrice)
}

// ProfitMargin returns the profit as a percentage of the selling price, rounded
// to two places. A zero selling price yields zero rather than dividing by it.
func ProfitMargin(purchasePrice, sellingPrice decimal.Decimal) decimal.Decimal {
	if sellingPrice.IsZero() {
		return decimal.Zero
	}
	return UnitProfit(purchasePrice, sellingPrice).Div(sellingPrice).Mul(hundred).Round(2)
}

// InventoryValue is the sum of quantity * purchasePrice.
func InventoryValue(medicines []domain.Medicine) decimal.Decimal {
	total := decimal.Zero
	for _, m := range medicines {
		total = total.Add(m.PurchasePrice.Mul(decimal.NewFromInt(int64(m.Quantity))))
	}
	return total
}

// PotentialSalesValue is the sum of quantity * sellingPrice.
func PotentialSalesValue(medicines []domain.Medicine) decimal.Decimal {
	total := decimal.Zero
	for _, m := range medicines {
		total = total.Add(m.SellingPrice.Mul(decimal.NewFromInt(int64(m.Quantity))))
	}
	return total
}

// PotentialProfit is PotentialSalesValue - InventoryValue.
func PotentialProfit(medicines []domain.Medicine) decimal.Decimal {
	return PotentialSalesValue(medicines).Sub(InventoryValue(medicines))
}

// Valuation computes the full priced view of the given medicines.
func Valuation(medicines []domain.Medicine) domain.InventoryValuation {
	v := domain.InventoryValuation{
		TotalMedicines:      len(medicines),
		InventoryValue:      InventoryValue(medicines),
		PotentialSalesValue: PotentialSalesValue(medicines),
	}
	v.PotentialProfit = v.PotentialSalesValue.Sub(v.InventoryValue)
	for _, m := range medicines {
		v.TotalQuantity += m.Quantity
		if m.InStock() {
			v.InStock++
		} else {
			v.OutOfStock++
		}
	}
	return v
}
