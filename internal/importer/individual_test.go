package importer

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

func TestIndividualParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/individual.json")
	require.NoError(t, err)
	defer f.Close()

	h, err := (&IndividualParser{}).Parse(f)
	require.NoError(t, err)
	require.Len(t, h.Individual, 7)
	assert.Empty(t, h.EquityPlan)

	wire, ok := h.Individual[0].(*model.CashEntry)
	require.True(t, ok)
	assert.Equal(t, model.ActionWireSent, wire.Action())
	assert.Equal(t, "-900.00", wire.AmountUSD.StringFixed(2))

	sale, ok := h.Individual[1].(*model.Sell)
	require.True(t, ok)
	assert.Equal(t, "U", sale.Symbol)
	assert.Equal(t, int64(15), sale.Quantity)
	assert.Equal(t, "50.00", sale.PriceUSD.StringFixed(2))
	assert.Equal(t, "0.10", sale.FeesUSD.StringFixed(2))
	assert.Equal(t, "2023-09-01", model.FormatDate(sale.Date))

	vest, ok := h.Individual[2].(*model.StockPlanActivity)
	require.True(t, ok)
	assert.Equal(t, "2023-07-01", model.FormatDate(vest.VestingDate()))

	optionSale := h.Individual[3].(*model.Sell)
	assert.True(t, optionSale.FeesUSD.IsZero(), "missing fee decodes as zero")
}

func TestIndividualParser_Validation(t *testing.T) {
	tests := []struct {
		name    string
		tx      string
		wantErr string
	}{
		{"unknown action", `{"date": "2023-01-01", "action": "Buy"}`, `unknown action "Buy"`},
		{"bad date", `{"date": "01/02/2023", "action": "Journal"}`, "date: parsing date"},
		{"missing date", `{"action": "Journal"}`, "date is required"},
		{"sell without price", `{"date": "2023-01-01", "action": "Sell", "symbol": "U", "quantity": 1}`, "priceUSD is required"},
		{"sell without symbol", `{"date": "2023-01-01", "action": "Sell", "quantity": 1, "priceUSD": "1"}`, "symbol is required"},
		{"vesting with zero quantity", `{"date": "2023-01-01", "action": "Stock Plan Activity", "symbol": "U"}`, "quantity must be positive"},
		{"transfer with zero quantity", `{"date": "2023-01-01", "action": "Security Transfer", "symbol": "U"}`, "quantity must be non-zero"},
		{"bad as-of date", `{"date": "2023-01-01", "asOfDate": "x", "action": "Stock Plan Activity", "symbol": "U", "quantity": 1}`, "asOfDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"format": "individual-json", "transactions": [` + tt.tx + `]}`
			_, err := (&IndividualParser{}).Parse(strings.NewReader(doc))
			require.Error(t, err)
			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, 0, ve.Index)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIndividualParser_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"fractional quantity", `{"format": "individual-json", "transactions": [{"date": "2023-01-01", "action": "Sell", "quantity": 1.5}]}`, "decoding individual history"},
		{"unknown field", `{"format": "individual-json", "transactions": [{"date": "2023-01-01", "action": "Sell", "price": 1}]}`, "unknown field"},
		{"wrong format", `{"format": "equity-json", "transactions": []}`, "expected format"},
		{"not json", `nope`, "decoding individual history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&IndividualParser{}).Parse(strings.NewReader(tt.doc))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIndividualParser_NegativeTransfer(t *testing.T) {
	doc := `{"format": "individual-json", "transactions": [{"date": "2023-01-01", "action": "Security Transfer", "symbol": "U", "quantity": -4}]}`
	h, err := (&IndividualParser{}).Parse(strings.NewReader(doc))
	require.NoError(t, err)
	tr := h.Individual[0].(*model.SecurityTransfer)
	assert.Equal(t, int64(-4), tr.Shares())
}
