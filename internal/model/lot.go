package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is a batch of shares acquired at one price on one date.
type Lot struct {
	Symbol              string
	Quantity            int64
	AcquisitionDate     time.Time
	AcquisitionPriceUSD decimal.Decimal
}

// SameBatch reports whether l and o share symbol, date and price, i.e.
// whether they collapse into one lot.
func (l Lot) SameBatch(o Lot) bool {
	return l.Symbol == o.Symbol &&
		l.AcquisitionDate.Equal(o.AcquisitionDate) &&
		l.AcquisitionPriceUSD.Equal(o.AcquisitionPriceUSD)
}

// TaxSaleOfSecurity is one row of the capital-gains report: the part of a
// disposal that was matched to a single lot.
type TaxSaleOfSecurity struct {
	Symbol       string
	Quantity     int64
	SaleDate     time.Time
	PurchaseDate time.Time

	SalePriceUSD     decimal.Decimal
	SaleFeesUSD      decimal.Decimal
	PurchasePriceUSD decimal.Decimal
	PurchaseFeesUSD  decimal.Decimal

	SalePriceEUR     decimal.Decimal
	SaleFeesEUR      decimal.Decimal
	PurchasePriceEUR decimal.Decimal
	PurchaseFeesEUR  decimal.Decimal

	// USD->EUR multipliers applied on the sale and purchase dates.
	SaleUSDEURRate     decimal.Decimal
	PurchaseUSDEURRate decimal.Decimal

	// Exactly one of these is non-zero, or both are zero.
	CapitalGainEUR decimal.Decimal
	CapitalLossEUR decimal.Decimal

	IsESPP bool
}
