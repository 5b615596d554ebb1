package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

func TestFilterStockTransactions(t *testing.T) {
	s := sell("2023-04-01", 5, "30", "")
	v := vest("2023-03-01", 5)
	out := transfer("2023-05-01", -2)
	history := []model.Individual{
		&model.CashEntry{Record: rec("2023-01-01"), Kind: model.ActionCreditInterest, AmountUSD: usd("0.12")},
		v,
		&model.CashEntry{Record: rec("2023-02-01"), Kind: model.ActionWireSent, AmountUSD: usd("-100")},
		s,
		transfer("2023-04-15", 0),
		out,
	}

	got := FilterStockTransactions(history)
	assert.Equal(t, []model.ShareMovement{v, s, out}, got)
}

func TestFilterStockTransactions_Empty(t *testing.T) {
	assert.Empty(t, FilterStockTransactions(nil))
}

func TestClassifierHelpers(t *testing.T) {
	in := transfer("2023-01-10", 4)
	moves := []model.ShareMovement{
		vest("2023-01-01", 1), sell("2023-01-02", 1, "1", ""), transfer("2023-01-03", -1), in,
	}
	assert.Len(t, Vestings(moves), 1)
	assert.Len(t, Sales(moves), 1)
	assert.Equal(t, []*model.SecurityTransfer{in}, InboundTransfers(moves))
}
