package calculator

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Converter converts USD amounts into the reporting currency.
type Converter interface {
	USDToEUR(usd decimal.Decimal, date time.Time) (decimal.Decimal, error)
	USDToEURRate(date time.Time) (decimal.Decimal, error)
}

// BuildReport converts disposals into report rows ordered by sale date.
// Sale fees are deducted in full on every row of a split sale.
func BuildReport(disposals []Disposal, conv Converter) ([]model.TaxSaleOfSecurity, error) {
	chrono := slices.Clone(disposals)
	slices.SortStableFunc(chrono, func(a, b Disposal) int {
		return a.SaleDate.Compare(b.SaleDate)
	})

	rows := make([]model.TaxSaleOfSecurity, 0, len(chrono))
	for _, d := range chrono {
		row, err := reportRow(d, conv)
		if err != nil {
			return nil, fmt.Errorf("sale on %s: %w", model.FormatDate(d.SaleDate), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func reportRow(d Disposal, conv Converter) (model.TaxSaleOfSecurity, error) {
	saleEUR, err := conv.USDToEUR(d.SalePriceUSD, d.SaleDate)
	if err != nil {
		return model.TaxSaleOfSecurity{}, err
	}
	saleRate, err := conv.USDToEURRate(d.SaleDate)
	if err != nil {
		return model.TaxSaleOfSecurity{}, err
	}
	saleFeesEUR := decimal.Zero
	if !d.SaleFeesUSD.IsZero() {
		if saleFeesEUR, err = conv.USDToEUR(d.SaleFeesUSD, d.SaleDate); err != nil {
			return model.TaxSaleOfSecurity{}, err
		}
	}
	purchaseEUR, err := conv.USDToEUR(d.PurchasePriceUSD, d.PurchaseDate)
	if err != nil {
		return model.TaxSaleOfSecurity{}, err
	}
	purchaseRate, err := conv.USDToEURRate(d.PurchaseDate)
	if err != nil {
		return model.TaxSaleOfSecurity{}, err
	}
	purchaseFeesEUR := decimal.Zero

	qty := decimal.NewFromInt(d.Quantity)
	gain := qty.Mul(saleEUR.Sub(purchaseEUR)).Sub(saleFeesEUR).Sub(purchaseFeesEUR)

	row := model.TaxSaleOfSecurity{
		Symbol:       d.Symbol,
		Quantity:     d.Quantity,
		SaleDate:     d.SaleDate,
		PurchaseDate: d.PurchaseDate,

		SalePriceUSD:     d.SalePriceUSD,
		SaleFeesUSD:      d.SaleFeesUSD,
		PurchasePriceUSD: d.PurchasePriceUSD,
		PurchaseFeesUSD:  decimal.Zero,

		SalePriceEUR:     saleEUR,
		SaleFeesEUR:      saleFeesEUR,
		PurchasePriceEUR: purchaseEUR,
		PurchaseFeesEUR:  purchaseFeesEUR,

		SaleUSDEURRate:     saleRate,
		PurchaseUSDEURRate: purchaseRate,

		CapitalGainEUR: decimal.Max(gain, decimal.Zero),
		CapitalLossEUR: decimal.Max(gain.Neg(), decimal.Zero),

		IsESPP: d.ESPP,
	}
	return row, nil
}
