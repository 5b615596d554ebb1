package calculator

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// DefaultMaxOptionCandidates bounds the subset search per price group.
const DefaultMaxOptionCandidates = 16

// OptionSale is a same-day vesting and sale produced by a cashless option
// exercise. Its cost basis comes from the exercise record, so it is kept
// out of FIFO matching.
type OptionSale struct {
	Exercise model.OptionExercise
	Vesting  *model.StockPlanActivity
	Sale     *model.Sell
}

type optionPair struct {
	vesting *model.StockPlanActivity
	sale    *model.Sell
}

func (p optionPair) quantity() int64 { return p.sale.Quantity }

// priceKey compares prices at cent precision; brokerage exports round
// the same fill differently across files.
func priceKey(d decimal.Decimal) string { return d.StringFixed(2) }

// ReconcileOptionSales removes the vesting and sale pairs that belong to
// option exercises (exercise-and-sell and the sold rows of sell-to-cover)
// from moves. It returns the remaining movements and the removed pairs.
//
// For every exercise, pairs on the exercise date are grouped by sale
// price, and within each price group a subset whose quantities add up to
// the shares exercised is chosen, using at most one pair per row. The
// search is exponential in the group size, so groups larger than
// maxCandidates are rejected.
func ReconcileOptionSales(moves []model.ShareMovement, equity []model.EquityPlan, maxCandidates int) ([]model.ShareMovement, []OptionSale, error) {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxOptionCandidates
	}

	exercises := ofType[model.OptionExercise](equity)
	slices.SortStableFunc(exercises, func(a, b model.OptionExercise) int {
		return a.When().Compare(b.When())
	})

	working := slices.Clone(moves)
	var settled []OptionSale

	for _, ex := range exercises {
		rows := ex.SoldRows()
		if len(rows) == 0 {
			continue
		}

		pairsByPrice := lo.GroupBy(sameDayPairs(working, ex.When()), func(p optionPair) string {
			return priceKey(p.sale.PriceUSD)
		})
		rowsByPrice := lo.GroupBy(rows, func(r model.OptionRow) string {
			return priceKey(r.SalePriceUSD)
		})

		prices := lo.Keys(rowsByPrice)
		slices.Sort(prices)

		removed := map[model.ShareMovement]bool{}
		for _, price := range prices {
			group := rowsByPrice[price]
			target := lo.SumBy(group, func(r model.OptionRow) int64 { return r.SharesExercised })
			candidates := pairsByPrice[price]

			if len(candidates) > maxCandidates {
				return nil, nil, &UnresolvedOptionSaleError{
					Date:     ex.When(),
					PriceUSD: group[0].SalePriceUSD,
					Reason:   fmt.Sprintf("%d candidate pairs exceed the search limit of %d", len(candidates), maxCandidates),
				}
			}

			chosen, ok := findSubset(candidates, target, len(group))
			if !ok {
				return nil, nil, &UnresolvedOptionSaleError{
					Date:     ex.When(),
					PriceUSD: group[0].SalePriceUSD,
					Reason:   fmt.Sprintf("no combination of %d candidate pairs adds up to %d exercised shares", len(candidates), target),
				}
			}
			for _, p := range chosen {
				removed[p.vesting] = true
				removed[p.sale] = true
				settled = append(settled, OptionSale{Exercise: ex, Vesting: p.vesting, Sale: p.sale})
			}
		}

		working = lo.Filter(working, func(m model.ShareMovement, _ int) bool {
			return !removed[m]
		})
	}
	return working, settled, nil
}

// sameDayPairs pairs every vesting on date with the first unused sale of
// the same quantity on that date.
func sameDayPairs(moves []model.ShareMovement, date time.Time) []optionPair {
	day := model.Day(date)
	onDay := func(t time.Time) bool { return model.Day(t).Equal(day) }

	sales := lo.Filter(Sales(moves), func(s *model.Sell, _ int) bool { return onDay(s.Date) })
	used := make([]bool, len(sales))

	var pairs []optionPair
	for _, v := range Vestings(moves) {
		if !onDay(v.Date) {
			continue
		}
		for i, s := range sales {
			if !used[i] && s.Quantity == v.Quantity {
				used[i] = true
				pairs = append(pairs, optionPair{vesting: v, sale: s})
				break
			}
		}
	}
	return pairs
}

// findSubset returns a subset of candidates of at most maxCount elements
// whose quantities sum to target. Failed states are memoised.
func findSubset(candidates []optionPair, target int64, maxCount int) ([]optionPair, bool) {
	type state struct {
		i    int
		left int64
		n    int
	}
	failed := map[state]bool{}
	var pick []optionPair

	var search func(i int, left int64, n int) bool
	search = func(i int, left int64, n int) bool {
		if left == 0 {
			return true
		}
		if left < 0 || n == maxCount || i == len(candidates) {
			return false
		}
		st := state{i, left, n}
		if failed[st] {
			return false
		}

		pick = append(pick, candidates[i])
		if search(i+1, left-candidates[i].quantity(), n+1) {
			return true
		}
		pick = pick[:len(pick)-1]
		if search(i+1, left, n) {
			return true
		}

		failed[st] = true
		return false
	}

	if !search(0, target, 0) {
		return nil, false
	}
	return pick, true
}
