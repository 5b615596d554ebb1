package importer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// ValidationError describes a record that cannot be turned into a typed
// transaction.
type ValidationError struct {
	Index  int
	Action string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("transaction %d [%s]: %s", e.Index, e.Action, e.Reason)
}

// fieldErr collects the first error of a record's field conversions.
type fieldErr struct {
	err error
}

func (f *fieldErr) date(name, s string) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	if s == "" {
		f.err = fmt.Errorf("%s is required", name)
		return time.Time{}
	}
	d, err := model.ParseDate(s)
	if err != nil {
		f.err = fmt.Errorf("%s: %w", name, err)
	}
	return d
}

func (f *fieldErr) optionalDate(name, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	return f.date(name, s)
}

func (f *fieldErr) money(name string, v decimal.NullDecimal) decimal.Decimal {
	if f.err != nil {
		return decimal.Zero
	}
	if !v.Valid {
		f.err = fmt.Errorf("%s is required", name)
		return decimal.Zero
	}
	return v.Decimal
}

func (f *fieldErr) symbol(s string) string {
	if f.err == nil && s == "" {
		f.err = fmt.Errorf("symbol is required")
	}
	return s
}

func (f *fieldErr) positive(name string, q int64) int64 {
	if f.err == nil && q <= 0 {
		f.err = fmt.Errorf("%s must be positive, got %d", name, q)
	}
	return q
}

func optionalMoney(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}
