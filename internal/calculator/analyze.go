package calculator

import (
	"time"

	"github.com/samber/lo"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Analysis summarises the inputs before computation.
type Analysis struct {
	Symbol     string
	Individual int
	EquityPlan int
	FirstDate  time.Time
	LastDate   time.Time
	Warnings   []Warning
}

// Covers reports whether the histories span the whole calendar year.
func (a Analysis) Covers(year int) bool {
	if a.FirstDate.IsZero() {
		return false
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return !a.FirstDate.After(start) && !a.LastDate.Before(end)
}

// Analyze returns the date range of both histories and the approximations
// the computation will make on them.
func Analyze(individual []model.Individual, equity []model.EquityPlan) Analysis {
	dates := make([]time.Time, 0, len(individual)+len(equity))
	for _, t := range individual {
		dates = append(dates, t.When())
	}
	for _, t := range equity {
		dates = append(dates, t.When())
	}

	a := Analysis{Individual: len(individual), EquityPlan: len(equity)}
	if symbol, err := CheckSymbol(individual, equity, ""); err == nil {
		a.Symbol = symbol
	}
	if len(dates) > 0 {
		a.FirstDate = lo.MinBy(dates, func(x, y time.Time) bool { return x.Before(y) })
		a.LastDate = lo.MaxBy(dates, func(x, y time.Time) bool { return x.After(y) })
	}

	if covers := ofType[*model.SellToCover](equity); len(covers) > 0 {
		a.Warnings = append(a.Warnings, Warning{
			Kind:    WarnSellToCoverBasis,
			Message: "sell-to-cover shares use the award price as cost basis; the FMV at exercise may differ",
		})
	}
	withFees := lo.Filter(Sales(FilterStockTransactions(individual)), func(s *model.Sell, _ int) bool {
		return !s.FeesUSD.IsZero()
	})
	planWithFees := lo.Filter(ofType[*model.PlanSale](equity), func(s *model.PlanSale, _ int) bool {
		return !s.FeesUSD.IsZero()
	})
	if len(withFees)+len(planWithFees) > 0 {
		a.Warnings = append(a.Warnings, Warning{
			Kind:    WarnSplitSaleFees,
			Message: "sales with fees that span several lots deduct the full fee on each report row",
		})
	}
	return a
}
