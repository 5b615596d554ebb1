package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityAction names an equity-plan (award center) transaction type.
type EquityAction string

const (
	EquityDeposit         EquityAction = "Deposit"
	EquityLapse           EquityAction = "Lapse"
	EquitySale            EquityAction = "Sale"
	EquityForcedQuickSell EquityAction = "Forced Quick Sell"
	EquityExerciseAndSell EquityAction = "Exercise and Sell"
	EquitySellToCover     EquityAction = "Sell To Cover"
	EquityWireTransfer    EquityAction = "Wire Transfer"
)

// EquityPlan is one validated row of the equity-plan history. The set of
// implementations is closed: Deposit, Lapse, PlanSale, ExerciseAndSell,
// SellToCover and WireTransfer.
type EquityPlan interface {
	When() time.Time
	Action() EquityAction
	equityPlan()
}

// Deposit is an ESPP purchase landing in the plan account.
type Deposit struct {
	Record
	Symbol             string
	Quantity           int64
	PurchaseDate       time.Time
	PurchasePriceUSD   decimal.Decimal
	SubscriptionDate   time.Time
	SubscriptionFMVUSD decimal.Decimal
	PurchaseFMVUSD     decimal.Decimal
}

func (*Deposit) Action() EquityAction { return EquityDeposit }
func (*Deposit) equityPlan() {}

// Lapse is a restricted-stock vest. FMVUSD is the fair market value at vest.
type Lapse struct {
	Record
	Symbol          string
	Quantity        int64
	AwardDate       time.Time
	AwardID         string
	FMVUSD          decimal.Decimal
	SalePriceUSD    decimal.Decimal // zero when no shares were sold
	SharesSold      int64
	SharesDeposited int64
	TotalTaxesUSD   decimal.Decimal
}

func (*Lapse) Action() EquityAction { return EquityLapse }
func (*Lapse) equityPlan() {}

// SaleRow is one lot line of an ESPP sale.
type SaleRow struct {
	Type               string
	Shares             int64
	SalePriceUSD       decimal.Decimal
	SubscriptionDate   time.Time
	SubscriptionFMVUSD decimal.Decimal
	PurchaseDate       time.Time
	PurchasePriceUSD   decimal.Decimal
	PurchaseFMVUSD     decimal.Decimal
	GrossProceedsUSD   decimal.Decimal
}

// PlanSale is a sale of ESPP shares from the plan account. Forced marks a
// forced quick sell.
type PlanSale struct {
	Record
	Symbol    string
	Quantity  int64
	FeesUSD   decimal.Decimal
	AmountUSD decimal.Decimal
	Forced    bool
	Rows      []SaleRow
}

func (s *PlanSale) Action() EquityAction {
	if s.Forced {
		return EquityForcedQuickSell
	}
	return EquitySale
}
func (*PlanSale) equityPlan() {}

// SalePriceUSD returns the price of the first row. All rows of one sale
// settle at the same market price.
func (s *PlanSale) SalePriceUSD() decimal.Decimal {
	if len(s.Rows) == 0 {
		return decimal.Zero
	}
	return s.Rows[0].SalePriceUSD
}

// OptionRowAction tells whether an option tranche was sold or kept.
type OptionRowAction string

const (
	OptionRowSell OptionRowAction = "Sell"
	OptionRowHold OptionRowAction = "Hold"
)

// OptionRow is one award tranche of an option exercise.
type OptionRow struct {
	AwardID         string
	Action          OptionRowAction
	SharesExercised int64
	AwardPriceUSD   decimal.Decimal
	SalePriceUSD    decimal.Decimal
	AwardType       string
	AwardDate       time.Time
}

// OptionDetails is the summary block of an option exercise.
type OptionDetails struct {
	ExerciseCostUSD  decimal.Decimal
	TaxesUSD         decimal.Decimal
	GrossProceedsUSD decimal.Decimal
	NetProceedsUSD   decimal.Decimal
}

// OptionExercise is implemented by the option-exercise records whose
// same-day sales bypass FIFO ordering.
type OptionExercise interface {
	EquityPlan
	SoldRows() []OptionRow
}

// ExerciseAndSell is a cashless exercise where every exercised share is sold.
type ExerciseAndSell struct {
	Record
	Symbol    string
	Quantity  int64
	FeesUSD   decimal.Decimal
	AmountUSD decimal.Decimal
	Rows      []OptionRow
	Details   OptionDetails
}

func (*ExerciseAndSell) Action() EquityAction { return EquityExerciseAndSell }
func (*ExerciseAndSell) equityPlan() {}

// SoldRows returns every row; an exercise-and-sell keeps nothing.
func (e *ExerciseAndSell) SoldRows() []OptionRow { return e.Rows }

// SellToCover exercises options and sells only enough shares to cover cost
// and taxes; held rows describe the retained shares.
type SellToCover struct {
	Record
	Symbol    string
	Quantity  int64
	FeesUSD   decimal.Decimal
	AmountUSD decimal.Decimal
	Rows      []OptionRow
	Details   OptionDetails
}

func (*SellToCover) Action() EquityAction { return EquitySellToCover }
func (*SellToCover) equityPlan() {}

// SoldRows returns the rows whose shares were sold.
func (s *SellToCover) SoldRows() []OptionRow { return s.rowsWith(OptionRowSell) }

// HeldRows returns the rows whose shares were retained.
func (s *SellToCover) HeldRows() []OptionRow { return s.rowsWith(OptionRowHold) }

func (s *SellToCover) rowsWith(action OptionRowAction) []OptionRow {
	var rows []OptionRow
	for _, r := range s.Rows {
		if r.Action == action {
			rows = append(rows, r)
		}
	}
	return rows
}

// WireTransfer is a cash wire out of the plan account.
type WireTransfer struct {
	Record
	FeesUSD   decimal.Decimal
	AmountUSD decimal.Decimal
}

func (*WireTransfer) Action() EquityAction { return EquityWireTransfer }
func (*WireTransfer) equityPlan() {}

// EquitySymbol returns the ticker carried by t, or "" for cash-only records.
func EquitySymbol(t EquityPlan) string {
	switch v := t.(type) {
	case *Deposit:
		return v.Symbol
	case *Lapse:
		return v.Symbol
	case *PlanSale:
		return v.Symbol
	case *ExerciseAndSell:
		return v.Symbol
	case *SellToCover:
		return v.Symbol
	}
	return ""
}
