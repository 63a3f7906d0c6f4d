// Package tape keeps the bounded per-symbol trade history queried by
// RecentTrades and exported as CSV.
package tape

import (
	"fmt"
	"strings"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// DefaultCapacity bounds a tape when no capacity is given.
const DefaultCapacity = 10000

// TradeTape holds the most recent trades of one symbol in arrival order.
type TradeTape struct {
	trades   []orderbookv1.TradeEvent
	capacity int
}

// NewTradeTape creates a tape bounded at capacity trades. Non-positive
// capacities fall back to DefaultCapacity.
func NewTradeTape(capacity int) *TradeTape {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &TradeTape{capacity: capacity}
}

// AddTrade appends a trade, evicting the oldest beyond capacity.
func (t *TradeTape) AddTrade(trade orderbookv1.TradeEvent) {
	t.trades = append(t.trades, trade)
	if len(t.trades) > t.capacity {
		t.trades = t.trades[len(t.trades)-t.capacity:]
	}
}

// RecentTrades returns up to maxCount most recent trades, oldest first.
func (t *TradeTape) RecentTrades(maxCount int) []orderbookv1.TradeEvent {
	if maxCount > len(t.trades) {
		maxCount = len(t.trades)
	}
	if maxCount <= 0 {
		return nil
	}

	out := make([]orderbookv1.TradeEvent, maxCount)
	copy(out, t.trades[len(t.trades)-maxCount:])
	return out
}

// Size returns the number of trades held.
func (t *TradeTape) Size() int {
	return len(t.trades)
}

// Clear discards every trade.
func (t *TradeTape) Clear() {
	t.trades = nil
}

// ToCSV renders the tape with a header row, oldest trade first.
func (t *TradeTape) ToCSV() string {
	var sb strings.Builder
	sb.WriteString("trade_id,symbol,timestamp,price,quantity,side," +
		"aggressive_order_id,passive_order_id,aggressive_trader_id,passive_trader_id\n")

	for _, trade := range t.trades {
		fmt.Fprintf(&sb, "%d,%s,%d,%d,%d,%s,%d,%d,%d,%d\n",
			trade.TradeID, trade.Symbol, trade.Timestamp, trade.Price, trade.Quantity,
			trade.AggressorSide, trade.AggressiveOrderID, trade.PassiveOrderID,
			trade.AggressiveTrader, trade.PassiveTrader)
	}

	return sb.String()
}
