package orderbook

import (
	"fmt"

	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	marketdatav1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/marketdata/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	telemetryv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/telemetry/v1"
)

var _ enginev1.Book = (*OrderBook)(nil)

// OrderBook is the price-time-priority book for a single symbol: two
// sorted ladders of FIFO levels plus an order-id index. All operations
// are total and run synchronously to completion; validation is the
// engine's responsibility.
type OrderBook struct {
	symbol    string
	stpPolicy orderbookv1.STPPolicy

	bids *ladder
	asks *ladder

	orders map[orderbookv1.OrderID]*orderbookv1.Order

	nextTradeID orderbookv1.TradeID
	tradeCount  uint64
	totalVolume orderbookv1.Quantity

	arrivals uint64
}

// NewOrderBook creates an empty book for the symbol with the given
// self-trade prevention policy.
func NewOrderBook(symbol string, stpPolicy orderbookv1.STPPolicy) *OrderBook {
	return &OrderBook{
		symbol:      symbol,
		stpPolicy:   stpPolicy,
		bids:        newLadder(true),
		asks:        newLadder(false),
		orders:      make(map[orderbookv1.OrderID]*orderbookv1.Order),
		nextTradeID: 1,
	}
}

// Symbol returns the symbol this book trades.
func (b *OrderBook) Symbol() string {
	return b.symbol
}

// AddOrder takes ownership of a copy of the order, matches it against the
// opposite side and either rests the remainder (DAY/GTC) or discards it
// (IOC, FOK, MARKET, fully filled). It returns the trades in price-time priority
// order. An unfillable FOK order produces zero trades and never touches
// the book.
func (b *OrderBook) AddOrder(order orderbookv1.Order, now orderbookv1.Timestamp) []orderbookv1.TradeEvent {
	o := order
	b.arrivals++
	o.SetArrival(b.arrivals)

	if o.IsFOK() && !b.fokFillable(&o) {
		return nil
	}

	trades := b.matchOrder(&o, now)

	if o.RemainingQuantity > 0 {
		switch {
		case o.IsIOC():
			return trades
		case o.IsFOK():
			return nil
		case o.IsMarket():
			return trades
		default:
			b.orders[o.OrderID] = &o
			b.sideLadder(o.Side).upsert(o.Price).Enqueue(&o)
		}
	}

	return trades
}

// CancelOrder removes the order from its ladder and the index. It returns
// false when the id is unknown.
func (b *OrderBook) CancelOrder(orderID orderbookv1.OrderID) bool {
	order, ok := b.orders[orderID]
	if !ok {
		return false
	}

	b.removeFromBook(order)
	delete(b.orders, orderID)
	return true
}

// ReplaceOrder cancels the order and adds a fresh one inheriting every
// attribute except price and quantity. The replacement keeps the original
// order id but loses time priority. An unknown id returns an empty trade
// list and changes nothing.
func (b *OrderBook) ReplaceOrder(orderID orderbookv1.OrderID, newPrice orderbookv1.Price, newQuantity orderbookv1.Quantity, now orderbookv1.Timestamp) []orderbookv1.TradeEvent {
	order, ok := b.orders[orderID]
	if !ok {
		return nil
	}

	replacement := *order
	replacement.Price = newPrice
	replacement.Quantity = newQuantity
	replacement.RemainingQuantity = newQuantity

	b.removeFromBook(order)
	delete(b.orders, orderID)

	return b.AddOrder(replacement, now)
}

// BestBid returns the highest bid price, if any.
func (b *OrderBook) BestBid() (orderbookv1.Price, bool) {
	if level := b.bids.best(); level != nil {
		return level.price, true
	}
	return orderbookv1.InvalidPrice, false
}

// BestAsk returns the lowest ask price, if any.
func (b *OrderBook) BestAsk() (orderbookv1.Price, bool) {
	if level := b.asks.best(); level != nil {
		return level.price, true
	}
	return orderbookv1.InvalidPrice, false
}

// TopOfBook returns the best bid and ask with aggregated sizes.
func (b *OrderBook) TopOfBook(timestamp orderbookv1.Timestamp) marketdatav1.TopOfBook {
	tob := marketdatav1.TopOfBook{
		Symbol:    b.symbol,
		BestBid:   orderbookv1.InvalidPrice,
		BestAsk:   orderbookv1.InvalidPrice,
		Timestamp: timestamp,
	}

	if level := b.bids.best(); level != nil {
		tob.BestBid = level.price
		tob.BidSize = level.totalQuantity
	}
	if level := b.asks.best(); level != nil {
		tob.BestAsk = level.price
		tob.AskSize = level.totalQuantity
	}

	return tob
}

// DepthSnapshot returns up to depthLevels aggregated levels per side,
// bids descending and asks ascending.
func (b *OrderBook) DepthSnapshot(depthLevels int, timestamp orderbookv1.Timestamp) marketdatav1.DepthSnapshot {
	snapshot := marketdatav1.DepthSnapshot{
		Symbol:         b.symbol,
		Timestamp:      timestamp,
		SequenceNumber: b.tradeCount,
	}

	collect := func(l *ladder) []marketdatav1.PriceLevel {
		var out []marketdatav1.PriceLevel
		l.each(func(level *Level) bool {
			if len(out) >= depthLevels {
				return false
			}
			out = append(out, marketdatav1.PriceLevel{
				Price:      level.price,
				Quantity:   level.totalQuantity,
				OrderCount: uint32(level.OrderCount()),
			})
			return true
		})
		return out
	}

	snapshot.Bids = collect(b.bids)
	snapshot.Asks = collect(b.asks)
	return snapshot
}

// FindOrder returns a copy of the resting order with the given id.
func (b *OrderBook) FindOrder(orderID orderbookv1.OrderID) (orderbookv1.Order, bool) {
	if order, ok := b.orders[orderID]; ok {
		return *order, true
	}
	return orderbookv1.Order{}, false
}

// ActiveOrderCount returns the number of resting orders.
func (b *OrderBook) ActiveOrderCount() int {
	return len(b.orders)
}

// BidLevelCount returns the number of bid price levels.
func (b *OrderBook) BidLevelCount() int {
	return b.bids.size()
}

// AskLevelCount returns the number of ask price levels.
func (b *OrderBook) AskLevelCount() int {
	return b.asks.size()
}

// Stats returns the current per-symbol statistics.
func (b *OrderBook) Stats() telemetryv1.SymbolStats {
	stats := telemetryv1.SymbolStats{
		ActiveOrders: uint64(len(b.orders)),
		BidLevels:    uint64(b.bids.size()),
		AskLevels:    uint64(b.asks.size()),
		TradeVolume:  b.totalVolume,
		TradeCount:   b.tradeCount,
		BestBid:      orderbookv1.InvalidPrice,
		BestAsk:      orderbookv1.InvalidPrice,
	}

	if price, ok := b.BestBid(); ok {
		stats.BestBid = price
	}
	if price, ok := b.BestAsk(); ok {
		stats.BestAsk = price
	}

	b.bids.each(func(level *Level) bool {
		if level.totalQuantity > stats.MaxBidDepth {
			stats.MaxBidDepth = level.totalQuantity
		}
		return true
	})
	b.asks.each(func(level *Level) bool {
		if level.totalQuantity > stats.MaxAskDepth {
			stats.MaxAskDepth = level.totalQuantity
		}
		return true
	})

	return stats
}

// sideLadder returns the ladder orders of the given side rest on.
func (b *OrderBook) sideLadder(side orderbookv1.Side) *ladder {
	if side == orderbookv1.SideBuy {
		return b.bids
	}
	return b.asks
}

// crosses reports whether a limit order at the incoming price trades with
// a level at price. Market orders cross every level.
func crosses(o *orderbookv1.Order, price orderbookv1.Price) bool {
	if o.IsMarket() {
		return true
	}
	if o.IsBuy() {
		return o.Price >= price
	}
	return o.Price <= price
}

// fokFillable reports whether the full remaining quantity is available on
// the opposite side at acceptable prices. Resting quantity that self-trade
// prevention would block never counts: the incoming order cannot fill
// against it.
func (b *OrderBook) fokFillable(o *orderbookv1.Order) bool {
	opposite := b.sideLadder(o.Side.Opposite())

	var available orderbookv1.Quantity
	filled := false
	opposite.each(func(level *Level) bool {
		if !crosses(o, level.price) {
			return false
		}
		for _, resting := range level.orders {
			if b.wouldSelfTrade(o, resting) {
				continue
			}
			available += resting.RemainingQuantity
			if available >= o.RemainingQuantity {
				filled = true
				return false
			}
		}
		return true
	})

	return filled
}

// matchOrder walks the opposite ladder best level first and each level's
// FIFO queue front first, producing a trade per fill at the resting
// order's price.
func (b *OrderBook) matchOrder(o *orderbookv1.Order, now orderbookv1.Timestamp) []orderbookv1.TradeEvent {
	var trades []orderbookv1.TradeEvent
	opposite := b.sideLadder(o.Side.Opposite())

	for o.RemainingQuantity > 0 && !opposite.empty() {
		level := opposite.best()
		if !crosses(o, level.price) {
			break
		}

		for o.RemainingQuantity > 0 && !level.Empty() {
			resting := level.Front()

			if b.wouldSelfTrade(o, resting) {
				b.handleSelfTrade(o, resting)
				if o.RemainingQuantity == 0 {
					break
				}
				continue
			}

			fill := o.RemainingQuantity
			if resting.RemainingQuantity < fill {
				fill = resting.RemainingQuantity
			}

			trades = append(trades, b.createTrade(o, resting, fill, level.price, now))

			o.RemainingQuantity -= fill
			resting.RemainingQuantity -= fill
			level.Reduce(fill)

			b.tradeCount++
			b.totalVolume += fill

			if resting.RemainingQuantity == 0 {
				level.PopFront()
				delete(b.orders, resting.OrderID)
			}
		}

		if level.Empty() {
			opposite.remove(level.price)
		}
	}

	return trades
}

// wouldSelfTrade reports whether matching the pair would violate the
// book's self-trade prevention policy.
func (b *OrderBook) wouldSelfTrade(incoming, resting *orderbookv1.Order) bool {
	if b.stpPolicy == orderbookv1.STPNone {
		return false
	}
	return incoming.TraderID == resting.TraderID && incoming.TraderID != orderbookv1.InvalidTraderID
}

// handleSelfTrade applies the configured policy to the blocked pair. No
// trade event is produced for an averted match.
func (b *OrderBook) handleSelfTrade(incoming, resting *orderbookv1.Order) {
	switch b.stpPolicy {
	case orderbookv1.STPCancelIncoming:
		incoming.RemainingQuantity = 0
	case orderbookv1.STPCancelResting:
		b.removeFromBook(resting)
		delete(b.orders, resting.OrderID)
	case orderbookv1.STPCancelBoth:
		incoming.RemainingQuantity = 0
		b.removeFromBook(resting)
		delete(b.orders, resting.OrderID)
	}
}

// removeFromBook unlinks the order from its level and drops the level if
// it became empty. The order-id index is the caller's responsibility.
func (b *OrderBook) removeFromBook(order *orderbookv1.Order) {
	side := b.sideLadder(order.Side)
	level := side.get(order.Price)
	if level == nil {
		return
	}

	level.Remove(order)
	if level.Empty() {
		side.remove(order.Price)
	}
}

func (b *OrderBook) createTrade(aggressive, passive *orderbookv1.Order, quantity orderbookv1.Quantity, price orderbookv1.Price, now orderbookv1.Timestamp) orderbookv1.TradeEvent {
	trade := orderbookv1.TradeEvent{
		TradeID:           b.nextTradeID,
		Symbol:            b.symbol,
		Price:             price,
		Quantity:          quantity,
		AggressorSide:     aggressive.Side,
		AggressiveOrderID: aggressive.OrderID,
		PassiveOrderID:    passive.OrderID,
		AggressiveTrader:  aggressive.TraderID,
		PassiveTrader:     passive.TraderID,
		Timestamp:         now,
	}
	b.nextTradeID++
	return trade
}

// CheckInvariants validates the structural invariants of the book:
// index/queue consistency, cached level totals, ladder ordering and a
// non-crossed top. It is intended for tests.
func (b *OrderBook) CheckInvariants() error {
	seen := make(map[orderbookv1.OrderID]bool)

	checkLadder := func(l *ladder, side orderbookv1.Side) error {
		var prev orderbookv1.Price
		for i, level := range l.levels {
			if i > 0 {
				if l.descending && level.price >= prev {
					return fmt.Errorf("bid ladder not strictly decreasing at price %d", level.price)
				}
				if !l.descending && level.price <= prev {
					return fmt.Errorf("ask ladder not strictly increasing at price %d", level.price)
				}
			}
			prev = level.price

			if level.Empty() {
				return fmt.Errorf("empty level at price %d", level.price)
			}

			var total orderbookv1.Quantity
			for _, order := range level.orders {
				if order.RemainingQuantity == 0 {
					return fmt.Errorf("order %d resting with zero remaining quantity", order.OrderID)
				}
				if order.Side != side {
					return fmt.Errorf("order %d on wrong side", order.OrderID)
				}
				if order.Price != level.price {
					return fmt.Errorf("order %d price %d differs from level price %d", order.OrderID, order.Price, level.price)
				}
				indexed, ok := b.orders[order.OrderID]
				if !ok || indexed != order {
					return fmt.Errorf("order %d not indexed", order.OrderID)
				}
				if seen[order.OrderID] {
					return fmt.Errorf("order %d appears in more than one queue", order.OrderID)
				}
				seen[order.OrderID] = true
				total += order.RemainingQuantity
			}
			if total != level.totalQuantity {
				return fmt.Errorf("level %d total %d differs from sum %d", level.price, level.totalQuantity, total)
			}
		}
		return nil
	}

	if err := checkLadder(b.bids, orderbookv1.SideBuy); err != nil {
		return err
	}
	if err := checkLadder(b.asks, orderbookv1.SideSell); err != nil {
		return err
	}

	if len(seen) != len(b.orders) {
		return fmt.Errorf("index holds %d orders, queues hold %d", len(b.orders), len(seen))
	}

	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if hasBid && hasAsk && bid >= ask {
		return fmt.Errorf("book crossed: best bid %d >= best ask %d", bid, ask)
	}

	return nil
}
