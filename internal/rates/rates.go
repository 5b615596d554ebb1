// Package rates converts USD amounts into EUR using a daily ECB reference
// rate table.
package rates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// DefaultLookbackDays covers a weekend plus one holiday.
const DefaultLookbackDays = 3

// Table maps an ISO date (yyyy-MM-dd) to the number of USD per one EUR.
// Rates must be positive; a Converter rejects any other value.
type Table map[string]decimal.Decimal

// NoExchangeRateError is returned when neither the requested date nor any
// date in the look-back window has a rate.
type NoExchangeRateError struct {
	Date time.Time
}

func (e *NoExchangeRateError) Error() string {
	return fmt.Sprintf("no exchange rate for %s", model.FormatDate(e.Date))
}

// InvalidRateError is returned when the table holds a non-positive rate
// for the date a conversion resolved to.
type InvalidRateError struct {
	Date time.Time
	Rate decimal.Decimal
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid exchange rate %s for %s", e.Rate, model.FormatDate(e.Date))
}

// Converter resolves USD->EUR conversions against a Table.
type Converter struct {
	table    Table
	lookback int
}

// NewConverter returns a Converter over table. A negative lookbackDays is
// treated as zero.
func NewConverter(table Table, lookbackDays int) *Converter {
	return &Converter{table: table, lookback: max(lookbackDays, 0)}
}

// Rate returns the raw table rate (USD per EUR) for date, falling back to
// T-1 .. T-lookback in that order. The second return is the date the rate
// was taken from.
func (c *Converter) Rate(date time.Time) (decimal.Decimal, time.Time, error) {
	day := model.Day(date)
	for i := 0; i <= c.lookback; i++ {
		d := day.AddDate(0, 0, -i)
		if r, ok := c.table[model.FormatDate(d)]; ok {
			if !r.IsPositive() {
				return decimal.Zero, time.Time{}, &InvalidRateError{Date: d, Rate: r}
			}
			return r, d, nil
		}
	}
	return decimal.Zero, time.Time{}, &NoExchangeRateError{Date: day}
}

// USDToEURRate returns the multiplier that turns USD into EUR on date.
func (c *Converter) USDToEURRate(date time.Time) (decimal.Decimal, error) {
	r, _, err := c.Rate(date)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(1).Div(r), nil
}

// USDToEUR converts usd into EUR at the rate for date.
func (c *Converter) USDToEUR(usd decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	r, _, err := c.Rate(date)
	if err != nil {
		return decimal.Zero, err
	}
	return usd.Div(r), nil
}

// Span returns the first and last dates present in the table.
func (t Table) Span() (first, last time.Time) {
	for k := range t {
		d, err := model.ParseDate(k)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	return first, last
}
