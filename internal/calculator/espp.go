package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/fifo"
	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// DefaultESPPDiscount is the share of the purchase FMV taxed as income
// rather than as capital gain.
var DefaultESPPDiscount = decimal.RequireFromString("0.10")

// ESPPBasis returns the capital-gains cost basis of an ESPP share:
// max(purchase price, FMV - discount*FMV).
func ESPPBasis(purchasePriceUSD, purchaseFMVUSD, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(purchasePriceUSD, purchaseFMVUSD.Sub(purchaseFMVUSD.Mul(discount)))
}

// BuildESPPLots turns the deposits of the equity-plan history into lots
// dated at the purchase date, in chronological order.
func BuildESPPLots(equity []model.EquityPlan, discount decimal.Decimal) []model.Lot {
	deposits := ofType[*model.Deposit](equity)
	lots := make([]model.Lot, 0, len(deposits))
	for _, d := range deposits {
		purchased := d.PurchaseDate
		if purchased.IsZero() {
			purchased = d.Date
		}
		lots = append(lots, model.Lot{
			Symbol:              d.Symbol,
			Quantity:            d.Quantity,
			AcquisitionDate:     purchased,
			AcquisitionPriceUSD: ESPPBasis(d.PurchasePriceUSD, d.PurchaseFMVUSD, discount),
		})
	}
	slices.SortStableFunc(lots, func(a, b model.Lot) int {
		return a.AcquisitionDate.Compare(b.AcquisitionDate)
	})
	return lots
}

// CalculateESPPCostBases matches the plan sales (including forced quick
// sells) of the equity-plan history against ESPP lots.
func CalculateESPPCostBases(equity []model.EquityPlan, lots []model.Lot) ([]Disposal, error) {
	sales := ofType[*model.PlanSale](equity)
	events := make([]fifo.Event[*model.PlanSale], 0, len(sales))
	for _, s := range sales {
		events = append(events, fifo.Event[*model.PlanSale]{Date: s.Date, Quantity: s.Quantity, Payload: s})
	}

	matches, err := fifo.MatchLots(lots, events)
	if err != nil {
		return nil, err
	}

	disposals := make([]Disposal, 0, len(matches))
	for _, m := range matches {
		sale := m.Event.Payload
		disposals = append(disposals, Disposal{
			Symbol:           sale.Symbol,
			Quantity:         m.Quantity,
			SaleDate:         sale.Date,
			SalePriceUSD:     sale.SalePriceUSD(),
			SaleFeesUSD:      sale.FeesUSD,
			PurchaseDate:     m.Lot.AcquisitionDate,
			PurchasePriceUSD: m.Lot.AcquisitionPriceUSD,
			ESPP:             true,
			Source:           sale,
			SaleQuantity:     sale.Quantity,
		})
	}
	return disposals, nil
}
