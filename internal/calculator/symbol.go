package calculator

import (
	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// CheckSymbol verifies that every stock-affecting record of both histories
// carries the same ticker. When supported is non-empty that ticker must be
// supported; otherwise the first ticker seen is adopted. It returns the
// resolved ticker, or "" when no record carries one.
func CheckSymbol(individual []model.Individual, equity []model.EquityPlan, supported string) (string, error) {
	symbol := supported
	check := func(s string) error {
		if s == "" {
			return nil
		}
		if symbol == "" {
			symbol = s
			return nil
		}
		if s != symbol {
			return &UnsupportedSymbolError{Symbol: s, Supported: symbol}
		}
		return nil
	}

	for _, t := range individual {
		if m, ok := t.(model.ShareMovement); ok {
			if err := check(m.Ticker()); err != nil {
				return "", err
			}
		}
	}
	for _, t := range equity {
		if err := check(model.EquitySymbol(t)); err != nil {
			return "", err
		}
	}
	return symbol, nil
}
