package calculator

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// UnmatchedVestingEventError is returned when a vesting cannot be traced to
// the equity-plan record that funded it.
type UnmatchedVestingEventError struct {
	Date     time.Time
	Quantity int64
}

func (e *UnmatchedVestingEventError) Error() string {
	return fmt.Sprintf("unmatched vesting event on %s (%d shares): no lapse or sell-to-cover record found",
		model.FormatDate(e.Date), e.Quantity)
}

// UnresolvedOptionSaleError is returned when the same-day vesting and sale
// pairs of an option exercise cannot be reconciled with its rows.
type UnresolvedOptionSaleError struct {
	Date     time.Time
	PriceUSD decimal.Decimal
	Reason   string
}

func (e *UnresolvedOptionSaleError) Error() string {
	msg := fmt.Sprintf("unresolved option sale on %s at %s USD", model.FormatDate(e.Date), e.PriceUSD.StringFixed(2))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// UnsupportedSymbolError is returned when the histories reference more than
// one security, or a security other than the configured one.
type UnsupportedSymbolError struct {
	Symbol    string
	Supported string
}

func (e *UnsupportedSymbolError) Error() string {
	return fmt.Sprintf("unsupported symbol %q: only %q is supported", e.Symbol, e.Supported)
}
