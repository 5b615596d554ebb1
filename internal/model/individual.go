package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndividualAction names a brokerage-account transaction type.
type IndividualAction string

const (
	ActionCreditInterest    IndividualAction = "Credit Interest"
	ActionJournal           IndividualAction = "Journal"
	ActionMiscCashEntry     IndividualAction = "Misc Cash Entry"
	ActionSecurityTransfer  IndividualAction = "Security Transfer"
	ActionSell              IndividualAction = "Sell"
	ActionServiceFee        IndividualAction = "Service Fee"
	ActionStockPlanActivity IndividualAction = "Stock Plan Activity"
	ActionWireSent          IndividualAction = "Wire Sent"
)

// Record holds the fields shared by every transaction variant.
type Record struct {
	Date        time.Time
	Description string
}

// When returns the transaction date.
func (r Record) When() time.Time { return r.Date }

// Individual is one validated row of the brokerage-account history.
// The set of implementations is closed: Sell, StockPlanActivity,
// SecurityTransfer and CashEntry.
type Individual interface {
	When() time.Time
	Action() IndividualAction
	individual()
}

// ShareMovement is implemented by individual records that change the share count.
type ShareMovement interface {
	Individual
	Ticker() string
	Shares() int64
}

// Sell is a market sale of shares.
type Sell struct {
	Record
	Symbol    string
	Quantity  int64
	PriceUSD  decimal.Decimal
	FeesUSD   decimal.Decimal // zero when the export had no fee
	AmountUSD decimal.Decimal
}

func (*Sell) Action() IndividualAction { return ActionSell }
func (*Sell) individual() {}
func (s *Sell) Ticker() string { return s.Symbol }
func (s *Sell) Shares() int64 { return s.Quantity }

// StockPlanActivity is a vesting: shares arriving from an equity award.
type StockPlanActivity struct {
	Record
	AsOfDate time.Time // zero when absent
	Symbol   string
	Quantity int64
}

func (*StockPlanActivity) Action() IndividualAction { return ActionStockPlanActivity }
func (*StockPlanActivity) individual() {}
func (s *StockPlanActivity) Ticker() string { return s.Symbol }
func (s *StockPlanActivity) Shares() int64 { return s.Quantity }

// VestingDate is the settlement ("as of") date when present, else the transaction date.
func (s *StockPlanActivity) VestingDate() time.Time {
	if !s.AsOfDate.IsZero() {
		return s.AsOfDate
	}
	return s.Date
}

// SecurityTransfer moves shares in or out of the account. Negative quantity = outbound.
type SecurityTransfer struct {
	Record
	Symbol   string
	Quantity int64
}

func (*SecurityTransfer) Action() IndividualAction { return ActionSecurityTransfer }
func (*SecurityTransfer) individual() {}
func (s *SecurityTransfer) Ticker() string { return s.Symbol }
func (s *SecurityTransfer) Shares() int64 { return s.Quantity }

// CashEntry covers the cash-only actions: interest, journal, misc cash,
// service fee and wire.
type CashEntry struct {
	Record
	Kind      IndividualAction
	AmountUSD decimal.Decimal
}

func (c *CashEntry) Action() IndividualAction { return c.Kind }
func (*CashEntry) individual() {}

// IsCashAction reports whether a is one of the cash-only actions.
func IsCashAction(a IndividualAction) bool {
	switch a {
	case ActionCreditInterest, ActionJournal, ActionMiscCashEntry, ActionServiceFee, ActionWireSent:
		return true
	}
	return false
}
