package report

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Display formats amount in the given ISO currency, rounded to the
// currency's minor unit. Unknown currencies fall back to "<amount> <code>".
func Display(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// WriteSummaries prints one block per year.
func WriteSummaries(w io.Writer, summaries []Summary, currency string) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No sales found.")
		return err
	}
	for i, s := range summaries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		lines := []struct{ label, value string }{
			{"Shares sold", fmt.Sprintf("%d", s.SharesSold)},
			{"Selling prices", Display(s.Income, currency)},
			{"Acquisition expenses", Display(s.Cost, currency)},
			{"Capital gains", Display(s.Gain, currency)},
			{"Capital losses", Display(s.Loss, currency)},
		}
		if _, err := fmt.Fprintf(w, "%d (%d rows)\n", s.Year, s.Rows); err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, "  %-22s %s\n", l.label, l.value); err != nil {
				return err
			}
		}
	}
	return nil
}
