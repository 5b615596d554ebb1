package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// FormatIndividual is the format name of brokerage-account history files.
const FormatIndividual = "individual-json"

// IndividualParser parses brokerage-account history files.
type IndividualParser struct{}

type individualFile struct {
	Format       string           `json:"format"`
	Transactions []individualJSON `json:"transactions"`
}

type individualJSON struct {
	Date        string              `json:"date"`
	AsOfDate    string              `json:"asOfDate"`
	Action      string              `json:"action"`
	Symbol      string              `json:"symbol"`
	Description string              `json:"description"`
	Quantity    int64               `json:"quantity"`
	PriceUSD    decimal.NullDecimal `json:"priceUSD"`
	FeesUSD     decimal.NullDecimal `json:"feesUSD"`
	AmountUSD   decimal.NullDecimal `json:"amountUSD"`
}

// Format returns the parser name.
func (p *IndividualParser) Format() string { return FormatIndividual }

// Parse reads an individual-json document.
func (p *IndividualParser) Parse(r io.Reader) (History, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file individualFile
	if err := dec.Decode(&file); err != nil {
		return History{}, fmt.Errorf("decoding individual history: %w", err)
	}
	if file.Format != FormatIndividual {
		return History{}, fmt.Errorf("expected format %q, got %q", FormatIndividual, file.Format)
	}

	var h History
	for i, raw := range file.Transactions {
		t, err := raw.toModel()
		if err != nil {
			return History{}, ValidationError{Index: i, Action: raw.Action, Reason: err.Error()}
		}
		h.Individual = append(h.Individual, t)
	}
	return h, nil
}

func (j individualJSON) toModel() (model.Individual, error) {
	var f fieldErr
	rec := model.Record{Date: f.date("date", j.Date), Description: j.Description}

	action := model.IndividualAction(j.Action)
	var t model.Individual
	switch {
	case action == model.ActionSell:
		t = &model.Sell{
			Record:    rec,
			Symbol:    f.symbol(j.Symbol),
			Quantity:  f.positive("quantity", j.Quantity),
			PriceUSD:  f.money("priceUSD", j.PriceUSD),
			FeesUSD:   optionalMoney(j.FeesUSD),
			AmountUSD: optionalMoney(j.AmountUSD),
		}
	case action == model.ActionStockPlanActivity:
		t = &model.StockPlanActivity{
			Record:   rec,
			AsOfDate: f.optionalDate("asOfDate", j.AsOfDate),
			Symbol:   f.symbol(j.Symbol),
			Quantity: f.positive("quantity", j.Quantity),
		}
	case action == model.ActionSecurityTransfer:
		if j.Quantity == 0 && f.err == nil {
			f.err = fmt.Errorf("quantity must be non-zero")
		}
		t = &model.SecurityTransfer{Record: rec, Symbol: f.symbol(j.Symbol), Quantity: j.Quantity}
	case model.IsCashAction(action):
		t = &model.CashEntry{Record: rec, Kind: action, AmountUSD: optionalMoney(j.AmountUSD)}
	default:
		return nil, fmt.Errorf("unknown action %q", j.Action)
	}

	if f.err != nil {
		return nil, f.err
	}
	return t, nil
}
