package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/fifo"
	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Disposal is the part of one sale that was matched to one lot.
type Disposal struct {
	Symbol       string
	Quantity     int64
	SaleDate     time.Time
	SalePriceUSD decimal.Decimal
	SaleFeesUSD  decimal.Decimal

	PurchaseDate     time.Time
	PurchasePriceUSD decimal.Decimal

	ESPP bool

	// Source is the originating *model.Sell or *model.PlanSale; all
	// fragments of one sale share it.
	Source any
	// SaleQuantity is the full quantity of Source.
	SaleQuantity int64
}

// CalculateCostBases matches the sales and outbound transfers of moves
// against lots. Transfers consume lot capacity but produce no disposal.
// Vestings and inbound transfers are ignored.
func CalculateCostBases(moves []model.ShareMovement, lots []model.Lot) ([]Disposal, error) {
	var events []fifo.Event[model.ShareMovement]
	for _, m := range moves {
		switch t := m.(type) {
		case *model.Sell:
			events = append(events, fifo.Event[model.ShareMovement]{Date: t.Date, Quantity: t.Quantity, Payload: t})
		case *model.SecurityTransfer:
			if t.Quantity < 0 {
				events = append(events, fifo.Event[model.ShareMovement]{Date: t.Date, Quantity: -t.Quantity, Payload: t})
			}
		}
	}

	matches, err := fifo.MatchLots(lots, events)
	if err != nil {
		return nil, err
	}

	var disposals []Disposal
	for _, m := range matches {
		sale, ok := m.Event.Payload.(*model.Sell)
		if !ok {
			continue
		}
		disposals = append(disposals, Disposal{
			Symbol:           sale.Symbol,
			Quantity:         m.Quantity,
			SaleDate:         sale.Date,
			SalePriceUSD:     sale.PriceUSD,
			SaleFeesUSD:      sale.FeesUSD,
			PurchaseDate:     m.Lot.AcquisitionDate,
			PurchasePriceUSD: m.Lot.AcquisitionPriceUSD,
			Source:           sale,
			SaleQuantity:     sale.Quantity,
		})
	}
	return disposals, nil
}
