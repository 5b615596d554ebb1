// Package report aggregates and exports capital-gains report rows.
package report

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Summary totals the rows of one tax year.
type Summary struct {
	Year       int
	Rows       int
	SharesSold int64
	// Income is the sale proceeds net of sale fees.
	Income decimal.Decimal
	// Cost is the acquisition cost including purchase fees.
	Cost decimal.Decimal
	Gain decimal.Decimal
	Loss decimal.Decimal
}

// Net returns gains minus losses.
func (s Summary) Net() decimal.Decimal { return s.Gain.Sub(s.Loss) }

// Years returns the distinct sale years of rows in ascending order.
func Years(rows []model.TaxSaleOfSecurity) []int {
	years := lo.Uniq(lo.Map(rows, func(r model.TaxSaleOfSecurity, _ int) int { return r.SaleDate.Year() }))
	slices.Sort(years)
	return years
}

// FilterYear returns the rows sold in year. A zero year keeps every row.
func FilterYear(rows []model.TaxSaleOfSecurity, year int) []model.TaxSaleOfSecurity {
	if year == 0 {
		return rows
	}
	return lo.Filter(rows, func(r model.TaxSaleOfSecurity, _ int) bool {
		return r.SaleDate.Year() == year
	})
}

// Summarize returns one Summary per sale year, oldest first.
func Summarize(rows []model.TaxSaleOfSecurity) []Summary {
	byYear := lo.GroupBy(rows, func(r model.TaxSaleOfSecurity) int { return r.SaleDate.Year() })

	summaries := make([]Summary, 0, len(byYear))
	for _, year := range Years(rows) {
		s := Summary{Year: year, Income: decimal.Zero, Cost: decimal.Zero, Gain: decimal.Zero, Loss: decimal.Zero}
		for _, r := range byYear[year] {
			qty := decimal.NewFromInt(r.Quantity)
			s.Rows++
			s.SharesSold += r.Quantity
			s.Income = s.Income.Add(r.SalePriceEUR.Mul(qty).Sub(r.SaleFeesEUR))
			s.Cost = s.Cost.Add(r.PurchasePriceEUR.Mul(qty).Add(r.PurchaseFeesEUR))
			s.Gain = s.Gain.Add(r.CapitalGainEUR)
			s.Loss = s.Loss.Add(r.CapitalLossEUR)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
