package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
	"github.com/hanzki/rsu-tax-calculator/internal/rates"
)

func day(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func usd(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rec(date string) model.Record { return model.Record{Date: day(date)} }

func sell(date string, qty int64, price, fees string) *model.Sell {
	s := &model.Sell{Record: rec(date), Symbol: "U", Quantity: qty, PriceUSD: usd(price)}
	if fees != "" {
		s.FeesUSD = usd(fees)
	}
	s.AmountUSD = s.PriceUSD.Mul(decimal.NewFromInt(qty)).Sub(s.FeesUSD)
	return s
}

func vest(date string, qty int64) *model.StockPlanActivity {
	return &model.StockPlanActivity{Record: rec(date), Symbol: "U", Quantity: qty}
}

func transfer(date string, qty int64) *model.SecurityTransfer {
	return &model.SecurityTransfer{Record: rec(date), Symbol: "U", Quantity: qty}
}

func lapse(date string, deposited, sold int64, fmv string) *model.Lapse {
	return &model.Lapse{
		Record:          rec(date),
		Symbol:          "U",
		Quantity:        deposited + sold,
		FMVUSD:          usd(fmv),
		SharesDeposited: deposited,
		SharesSold:      sold,
	}
}

func optionRow(action model.OptionRowAction, shares int64, award, sale string) model.OptionRow {
	return model.OptionRow{Action: action, SharesExercised: shares, AwardPriceUSD: usd(award), SalePriceUSD: usd(sale)}
}

func deposit(date string, qty int64, price, fmv string) *model.Deposit {
	return &model.Deposit{
		Record:           rec(date),
		Symbol:           "U",
		Quantity:         qty,
		PurchaseDate:     day(date),
		PurchasePriceUSD: usd(price),
		PurchaseFMVUSD:   usd(fmv),
	}
}

func planSale(date string, qty int64, price, fees string) *model.PlanSale {
	s := &model.PlanSale{
		Record:   rec(date),
		Symbol:   "U",
		Quantity: qty,
		Rows:     []model.SaleRow{{Type: "ESPP", Shares: qty, SalePriceUSD: usd(price)}},
	}
	if fees != "" {
		s.FeesUSD = usd(fees)
	}
	return s
}

// flatConverter returns a converter where 1 EUR costs rate USD on every
// date in [from, to].
func flatConverter(from, to, rate string) *rates.Converter {
	table := rates.Table{}
	for d := day(from); !d.After(day(to)); d = d.AddDate(0, 0, 1) {
		table[model.FormatDate(d)] = usd(rate)
	}
	return rates.NewConverter(table, rates.DefaultLookbackDays)
}
