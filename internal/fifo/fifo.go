// Package fifo allocates forfeiture events (sales, outbound transfers) to
// acquisition lots in first-in-first-out order.
package fifo

import (
	"fmt"
	"slices"
	"time"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Event removes Quantity shares from the holding pool on Date. Payload
// carries the originating transaction and is never inspected here.
type Event[P any] struct {
	Date     time.Time
	Quantity int64
	Payload  P
}

// Match allocates Quantity shares of Lot to Event.
type Match[P any] struct {
	Lot      model.Lot
	Event    Event[P]
	Quantity int64
}

// NoMatchingLotError is returned when an event cannot be covered by lots
// acquired on or before its date.
type NoMatchingLotError struct {
	Date      time.Time
	Unmatched int64
}

func (e *NoMatchingLotError) Error() string {
	return fmt.Sprintf("no matching lot for forfeiture on %s (%d shares unmatched)", model.FormatDate(e.Date), e.Unmatched)
}

// MatchLots allocates every event to lots, oldest lot first. Lots and
// events are stably sorted by date. An event may span several lots and a
// lot may serve several events. Matches are returned event-major, lot-minor.
func MatchLots[P any](lots []model.Lot, events []Event[P]) ([]Match[P], error) {
	chronoLots := slices.Clone(lots)
	slices.SortStableFunc(chronoLots, func(a, b model.Lot) int {
		return a.AcquisitionDate.Compare(b.AcquisitionDate)
	})
	chronoEvents := slices.Clone(events)
	slices.SortStableFunc(chronoEvents, func(a, b Event[P]) int {
		return a.Date.Compare(b.Date)
	})

	var matches []Match[P]
	cursor := 0
	var consumed int64

	for _, event := range chronoEvents {
		remaining := event.Quantity
		for remaining > 0 {
			if cursor >= len(chronoLots) || chronoLots[cursor].AcquisitionDate.After(event.Date) {
				return nil, &NoMatchingLotError{Date: event.Date, Unmatched: remaining}
			}
			lot := chronoLots[cursor]
			left := lot.Quantity - consumed
			if left <= 0 {
				cursor++
				consumed = 0
				continue
			}

			qty := min(left, remaining)
			matches = append(matches, Match[P]{Lot: lot, Event: event, Quantity: qty})
			remaining -= qty
			consumed += qty

			if consumed >= lot.Quantity {
				cursor++
				consumed = 0
			}
		}
	}
	return matches, nil
}

// Merge collapses adjacent lots of the same batch (symbol, date, price)
// into one by summing quantities. Order is preserved.
func Merge(lots []model.Lot) []model.Lot {
	var merged []model.Lot
	for _, lot := range lots {
		if n := len(merged); n > 0 && merged[n-1].SameBatch(lot) {
			merged[n-1].Quantity += lot.Quantity
			continue
		}
		merged = append(merged, lot)
	}
	return merged
}
