package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Header is the CSV header of an exported report.
const Header = "account,symbol,purchaseDate,saleDate,quantity,purchasePriceEUR,purchaseFeesEUR,salePriceEUR,saleFeesEUR,capitalLossEUR,capitalGainEUR,purchasePriceUSD,purchaseFeesUSD,salePriceUSD,saleFeesUSD,purchaseUSDEURRate,saleUSDEURRate"

// Account labels.
const (
	AccountEquityPlan = "EAC"
	AccountIndividual = "Individual"
)

const (
	numFields          = 17
	colAccount         = 0
	colSymbol          = 1
	colPurchaseDate    = 2
	colSaleDate        = 3
	colQuantity        = 4
	colPurchasePrice   = 5
	colPurchaseFees    = 6
	colSalePrice       = 7
	colSaleFees        = 8
	colCapitalLoss     = 9
	colCapitalGain     = 10
	colPurchasePriceUS = 11
	colPurchaseFeesUS  = 12
	colSalePriceUS     = 13
	colSaleFeesUS      = 14
	colPurchaseRate    = 15
	colSaleRate        = 16
)

// WriteCSV writes rows (including header) to w. A non-empty preamble is
// written as a single-field first line.
func WriteCSV(w io.Writer, rows []model.TaxSaleOfSecurity, preamble string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if preamble != "" {
		if err := cw.Write([]string{preamble}); err != nil {
			return fmt.Errorf("writing preamble: %w", err)
		}
	}
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a report row to CSV fields. EUR amounts are rounded
// to cents and rates to six decimals; USD amounts are written as is.
func MarshalRow(r model.TaxSaleOfSecurity) []string {
	row := make([]string, numFields)
	row[colAccount] = AccountIndividual
	if r.IsESPP {
		row[colAccount] = AccountEquityPlan
	}
	row[colSymbol] = r.Symbol
	row[colPurchaseDate] = model.FormatDate(r.PurchaseDate)
	row[colSaleDate] = model.FormatDate(r.SaleDate)
	row[colQuantity] = strconv.FormatInt(r.Quantity, 10)

	row[colPurchasePrice] = r.PurchasePriceEUR.StringFixed(2)
	row[colPurchaseFees] = r.PurchaseFeesEUR.StringFixed(2)
	row[colSalePrice] = r.SalePriceEUR.StringFixed(2)
	row[colSaleFees] = r.SaleFeesEUR.StringFixed(2)
	row[colCapitalLoss] = r.CapitalLossEUR.StringFixed(2)
	row[colCapitalGain] = r.CapitalGainEUR.StringFixed(2)

	row[colPurchasePriceUS] = r.PurchasePriceUSD.String()
	row[colPurchaseFeesUS] = r.PurchaseFeesUSD.String()
	row[colSalePriceUS] = r.SalePriceUSD.String()
	row[colSaleFeesUS] = r.SaleFeesUSD.String()

	row[colPurchaseRate] = r.PurchaseUSDEURRate.StringFixed(6)
	row[colSaleRate] = r.SaleUSDEURRate.StringFixed(6)
	return row
}
