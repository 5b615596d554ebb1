package calculator

import (
	"github.com/samber/lo"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// FilterStockTransactions returns the records of history that move shares
// (sales, vestings, transfers), dropping cash-only entries and zero-quantity
// movements. Order is preserved.
func FilterStockTransactions(history []model.Individual) []model.ShareMovement {
	return lo.FilterMap(history, func(t model.Individual, _ int) (model.ShareMovement, bool) {
		m, ok := t.(model.ShareMovement)
		return m, ok && m.Shares() != 0
	})
}

// ofType keeps the items whose dynamic type is T.
func ofType[T any, S any](items []S) []T {
	return lo.FilterMap(items, func(item S, _ int) (T, bool) {
		t, ok := any(item).(T)
		return t, ok
	})
}

// Vestings returns the stock plan activity records of moves.
func Vestings(moves []model.ShareMovement) []*model.StockPlanActivity {
	return ofType[*model.StockPlanActivity](moves)
}

// Sales returns the market sales of moves.
func Sales(moves []model.ShareMovement) []*model.Sell {
	return ofType[*model.Sell](moves)
}

// InboundTransfers returns transfers that add shares to the account.
func InboundTransfers(moves []model.ShareMovement) []*model.SecurityTransfer {
	return lo.Filter(ofType[*model.SecurityTransfer](moves), func(t *model.SecurityTransfer, _ int) bool {
		return t.Quantity > 0
	})
}
