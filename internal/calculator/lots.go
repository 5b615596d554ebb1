package calculator

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/hanzki/rsu-tax-calculator/internal/fifo"
	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// DefaultSellToCoverWindowDays is how far a sell-to-cover record may be
// from the vesting it funded.
const DefaultSellToCoverWindowDays = 7

// BuildLots derives the acquisition lots backing FIFO from vestings.
//
// Each vesting is matched against the equity-plan history, most recent
// first: a lapse on or before the vesting date whose deposited or sold
// share count equals the vesting quantity gives a lot at the lapse date
// and FMV. Failing that, a sell-to-cover within windowDays whose held row
// covers the quantity gives a lot at the award price; those lots are
// reported as warnings. Lots are returned in chronological order with
// adjacent equal batches merged.
func BuildLots(vestings []*model.StockPlanActivity, equity []model.EquityPlan, windowDays int) ([]model.Lot, []Warning, error) {
	recent := slices.Clone(equity)
	slices.SortStableFunc(recent, func(a, b model.EquityPlan) int {
		return b.When().Compare(a.When())
	})
	lapses := ofType[*model.Lapse](recent)
	covers := ofType[*model.SellToCover](recent)

	lots := make([]model.Lot, 0, len(vestings))
	var warnings []Warning
	for _, v := range vestings {
		if lot, ok := lotFromLapse(v, lapses); ok {
			lots = append(lots, lot)
			continue
		}
		if lot, ok := lotFromSellToCover(v, covers, windowDays); ok {
			lots = append(lots, lot)
			warnings = append(warnings, Warning{
				Kind: WarnSellToCoverBasis,
				Date: v.VestingDate(),
				Message: fmt.Sprintf("%d shares use the award price %s USD as cost basis instead of the FMV at exercise",
					v.Quantity, lot.AcquisitionPriceUSD.String()),
			})
			continue
		}
		return nil, nil, &UnmatchedVestingEventError{Date: v.VestingDate(), Quantity: v.Quantity}
	}

	slices.SortStableFunc(lots, func(a, b model.Lot) int {
		return a.AcquisitionDate.Compare(b.AcquisitionDate)
	})
	return fifo.Merge(lots), warnings, nil
}

func lotFromLapse(v *model.StockPlanActivity, lapses []*model.Lapse) (model.Lot, bool) {
	vested := v.VestingDate()
	lapse, ok := lo.Find(lapses, func(l *model.Lapse) bool {
		return !l.Date.After(vested) && (l.SharesDeposited == v.Quantity || l.SharesSold == v.Quantity)
	})
	if !ok {
		return model.Lot{}, false
	}
	return model.Lot{
		Symbol:              v.Symbol,
		Quantity:            v.Quantity,
		AcquisitionDate:     lapse.Date,
		AcquisitionPriceUSD: lapse.FMVUSD,
	}, true
}

func lotFromSellToCover(v *model.StockPlanActivity, covers []*model.SellToCover, windowDays int) (model.Lot, bool) {
	vested := v.VestingDate()
	for _, c := range covers {
		if model.DaysBetween(c.Date, vested) > windowDays {
			continue
		}
		row, ok := lo.Find(c.HeldRows(), func(r model.OptionRow) bool {
			return r.SharesExercised == v.Quantity
		})
		if !ok {
			continue
		}
		return model.Lot{
			Symbol:              v.Symbol,
			Quantity:            v.Quantity,
			AcquisitionDate:     c.Date,
			AcquisitionPriceUSD: row.AwardPriceUSD,
		}, true
	}
	return model.Lot{}, false
}
