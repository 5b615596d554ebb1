package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// FormatEquityPlan is the format name of equity-plan history files.
const FormatEquityPlan = "equity-json"

// EquityPlanParser parses equity-plan (award center) history files.
type EquityPlanParser struct{}

type equityFile struct {
	Format       string       `json:"format"`
	Transactions []equityJSON `json:"transactions"`
}

type equityJSON struct {
	Date        string              `json:"date"`
	Action      string              `json:"action"`
	Symbol      string              `json:"symbol"`
	Description string              `json:"description"`
	Quantity    int64               `json:"quantity"`
	FeesUSD     decimal.NullDecimal `json:"feesUSD"`
	AmountUSD   decimal.NullDecimal `json:"amountUSD"`

	Deposit *depositJSON  `json:"deposit"`
	Lapse   *lapseJSON    `json:"lapse"`
	Sale    []saleRowJSON `json:"sale"`
	Options *optionsJSON  `json:"options"`
}

type depositJSON struct {
	PurchaseDate       string              `json:"purchaseDate"`
	PurchasePriceUSD   decimal.NullDecimal `json:"purchasePriceUSD"`
	SubscriptionDate   string              `json:"subscriptionDate"`
	SubscriptionFMVUSD decimal.NullDecimal `json:"subscriptionFMVUSD"`
	PurchaseFMVUSD     decimal.NullDecimal `json:"purchaseFMVUSD"`
}

type lapseJSON struct {
	AwardDate       string              `json:"awardDate"`
	AwardID         string              `json:"awardId"`
	FMVUSD          decimal.NullDecimal `json:"fmvUSD"`
	SalePriceUSD    decimal.NullDecimal `json:"salePriceUSD"`
	SharesSold      int64               `json:"sharesSold"`
	SharesDeposited int64               `json:"sharesDeposited"`
	TotalTaxesUSD   decimal.NullDecimal `json:"totalTaxesUSD"`
}

type saleRowJSON struct {
	Type               string              `json:"type"`
	Shares             int64               `json:"shares"`
	SalePriceUSD       decimal.NullDecimal `json:"salePriceUSD"`
	SubscriptionDate   string              `json:"subscriptionDate"`
	SubscriptionFMVUSD decimal.NullDecimal `json:"subscriptionFMVUSD"`
	PurchaseDate       string              `json:"purchaseDate"`
	PurchasePriceUSD   decimal.NullDecimal `json:"purchasePriceUSD"`
	PurchaseFMVUSD     decimal.NullDecimal `json:"purchaseFMVUSD"`
	GrossProceedsUSD   decimal.NullDecimal `json:"grossProceedsUSD"`
}

type optionsJSON struct {
	Rows    []optionRowJSON `json:"rows"`
	Details struct {
		ExerciseCostUSD  decimal.NullDecimal `json:"exerciseCostUSD"`
		TaxesUSD         decimal.NullDecimal `json:"taxesUSD"`
		GrossProceedsUSD decimal.NullDecimal `json:"grossProceedsUSD"`
		NetProceedsUSD   decimal.NullDecimal `json:"netProceedsUSD"`
	} `json:"details"`
}

type optionRowJSON struct {
	AwardID         string              `json:"awardId"`
	Action          string              `json:"action"`
	SharesExercised int64               `json:"sharesExercised"`
	AwardPriceUSD   decimal.NullDecimal `json:"awardPriceUSD"`
	SalePriceUSD    decimal.NullDecimal `json:"salePriceUSD"`
	AwardType       string              `json:"awardType"`
	AwardDate       string              `json:"awardDate"`
}

// Format returns the parser name.
func (p *EquityPlanParser) Format() string { return FormatEquityPlan }

// Parse reads an equity-json document.
func (p *EquityPlanParser) Parse(r io.Reader) (History, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file equityFile
	if err := dec.Decode(&file); err != nil {
		return History{}, fmt.Errorf("decoding equity-plan history: %w", err)
	}
	if file.Format != FormatEquityPlan {
		return History{}, fmt.Errorf("expected format %q, got %q", FormatEquityPlan, file.Format)
	}

	var h History
	for i, raw := range file.Transactions {
		t, err := raw.toModel()
		if err != nil {
			return History{}, ValidationError{Index: i, Action: raw.Action, Reason: err.Error()}
		}
		h.EquityPlan = append(h.EquityPlan, t)
	}
	return h, nil
}

func (j equityJSON) toModel() (model.EquityPlan, error) {
	var f fieldErr
	rec := model.Record{Date: f.date("date", j.Date), Description: j.Description}

	var t model.EquityPlan
	switch model.EquityAction(j.Action) {
	case model.EquityDeposit:
		if j.Deposit == nil {
			return nil, fmt.Errorf("deposit details are required")
		}
		t = &model.Deposit{
			Record:             rec,
			Symbol:             f.symbol(j.Symbol),
			Quantity:           f.positive("quantity", j.Quantity),
			PurchaseDate:       f.date("deposit.purchaseDate", j.Deposit.PurchaseDate),
			PurchasePriceUSD:   f.money("deposit.purchasePriceUSD", j.Deposit.PurchasePriceUSD),
			SubscriptionDate:   f.optionalDate("deposit.subscriptionDate", j.Deposit.SubscriptionDate),
			SubscriptionFMVUSD: optionalMoney(j.Deposit.SubscriptionFMVUSD),
			PurchaseFMVUSD:     f.money("deposit.purchaseFMVUSD", j.Deposit.PurchaseFMVUSD),
		}
	case model.EquityLapse:
		if j.Lapse == nil {
			return nil, fmt.Errorf("lapse details are required")
		}
		t = &model.Lapse{
			Record:          rec,
			Symbol:          f.symbol(j.Symbol),
			Quantity:        j.Quantity,
			AwardDate:       f.optionalDate("lapse.awardDate", j.Lapse.AwardDate),
			AwardID:         j.Lapse.AwardID,
			FMVUSD:          f.money("lapse.fmvUSD", j.Lapse.FMVUSD),
			SalePriceUSD:    optionalMoney(j.Lapse.SalePriceUSD),
			SharesSold:      j.Lapse.SharesSold,
			SharesDeposited: j.Lapse.SharesDeposited,
			TotalTaxesUSD:   optionalMoney(j.Lapse.TotalTaxesUSD),
		}
	case model.EquitySale, model.EquityForcedQuickSell:
		rows, err := j.saleRows()
		if err != nil {
			return nil, err
		}
		t = &model.PlanSale{
			Record:    rec,
			Symbol:    f.symbol(j.Symbol),
			Quantity:  f.positive("quantity", j.Quantity),
			FeesUSD:   optionalMoney(j.FeesUSD),
			AmountUSD: optionalMoney(j.AmountUSD),
			Forced:    model.EquityAction(j.Action) == model.EquityForcedQuickSell,
			Rows:      rows,
		}
	case model.EquityExerciseAndSell, model.EquitySellToCover:
		rows, details, err := j.optionRows()
		if err != nil {
			return nil, err
		}
		if model.EquityAction(j.Action) == model.EquityExerciseAndSell {
			t = &model.ExerciseAndSell{
				Record: rec, Symbol: f.symbol(j.Symbol), Quantity: j.Quantity,
				FeesUSD: optionalMoney(j.FeesUSD), AmountUSD: optionalMoney(j.AmountUSD),
				Rows: rows, Details: details,
			}
		} else {
			t = &model.SellToCover{
				Record: rec, Symbol: f.symbol(j.Symbol), Quantity: j.Quantity,
				FeesUSD: optionalMoney(j.FeesUSD), AmountUSD: optionalMoney(j.AmountUSD),
				Rows: rows, Details: details,
			}
		}
	case model.EquityWireTransfer:
		t = &model.WireTransfer{Record: rec, FeesUSD: optionalMoney(j.FeesUSD), AmountUSD: optionalMoney(j.AmountUSD)}
	default:
		return nil, fmt.Errorf("unknown action %q", j.Action)
	}

	if f.err != nil {
		return nil, f.err
	}
	return t, nil
}

func (j equityJSON) saleRows() ([]model.SaleRow, error) {
	if len(j.Sale) == 0 {
		return nil, fmt.Errorf("at least one sale row is required")
	}
	rows := make([]model.SaleRow, 0, len(j.Sale))
	for i, r := range j.Sale {
		var f fieldErr
		row := model.SaleRow{
			Type:               r.Type,
			Shares:             f.positive("shares", r.Shares),
			SalePriceUSD:       f.money("salePriceUSD", r.SalePriceUSD),
			SubscriptionDate:   f.optionalDate("subscriptionDate", r.SubscriptionDate),
			SubscriptionFMVUSD: optionalMoney(r.SubscriptionFMVUSD),
			PurchaseDate:       f.optionalDate("purchaseDate", r.PurchaseDate),
			PurchasePriceUSD:   optionalMoney(r.PurchasePriceUSD),
			PurchaseFMVUSD:     optionalMoney(r.PurchaseFMVUSD),
			GrossProceedsUSD:   optionalMoney(r.GrossProceedsUSD),
		}
		if f.err != nil {
			return nil, fmt.Errorf("sale row %d: %w", i, f.err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (j equityJSON) optionRows() ([]model.OptionRow, model.OptionDetails, error) {
	if j.Options == nil || len(j.Options.Rows) == 0 {
		return nil, model.OptionDetails{}, fmt.Errorf("at least one option row is required")
	}
	rows := make([]model.OptionRow, 0, len(j.Options.Rows))
	for i, r := range j.Options.Rows {
		action := model.OptionRowAction(r.Action)
		if action == "" {
			action = model.OptionRowSell
		}
		if action != model.OptionRowSell && action != model.OptionRowHold {
			return nil, model.OptionDetails{}, fmt.Errorf("option row %d: unknown action %q", i, r.Action)
		}
		var f fieldErr
		row := model.OptionRow{
			AwardID:         r.AwardID,
			Action:          action,
			SharesExercised: f.positive("sharesExercised", r.SharesExercised),
			AwardPriceUSD:   f.money("awardPriceUSD", r.AwardPriceUSD),
			SalePriceUSD:    optionalMoney(r.SalePriceUSD),
			AwardType:       r.AwardType,
			AwardDate:       f.optionalDate("awardDate", r.AwardDate),
		}
		if action == model.OptionRowSell {
			row.SalePriceUSD = f.money("salePriceUSD", r.SalePriceUSD)
		}
		if f.err != nil {
			return nil, model.OptionDetails{}, fmt.Errorf("option row %d: %w", i, f.err)
		}
		rows = append(rows, row)
	}
	d := j.Options.Details
	details := model.OptionDetails{
		ExerciseCostUSD:  optionalMoney(d.ExerciseCostUSD),
		TaxesUSD:         optionalMoney(d.TaxesUSD),
		GrossProceedsUSD: optionalMoney(d.GrossProceedsUSD),
		NetProceedsUSD:   optionalMoney(d.NetProceedsUSD),
	}
	return rows, details, nil
}
