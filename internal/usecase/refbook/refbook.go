// Package refbook holds the brute-force reference matcher. It trades
// asymptotic efficiency for verifiability: a flat slice of live orders,
// linear scans everywhere, and externally observable behavior identical
// to the optimized book. It exists for tests and the dual-engine
// validator only.
package refbook

import (
	"sort"

	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	marketdatav1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/marketdata/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	telemetryv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/telemetry/v1"
)

var _ enginev1.Book = (*ReferenceBook)(nil)

// ReferenceBook is the naive correctness oracle for a single symbol.
type ReferenceBook struct {
	symbol    string
	stpPolicy orderbookv1.STPPolicy

	orders []*orderbookv1.Order

	nextTradeID orderbookv1.TradeID
	tradeCount  uint64
	totalVolume orderbookv1.Quantity

	arrivals uint64
}

// NewReferenceBook creates an empty reference book.
func NewReferenceBook(symbol string, stpPolicy orderbookv1.STPPolicy) *ReferenceBook {
	return &ReferenceBook{
		symbol:      symbol,
		stpPolicy:   stpPolicy,
		nextTradeID: 1,
	}
}

// Symbol returns the symbol this book trades.
func (b *ReferenceBook) Symbol() string {
	return b.symbol
}

// AddOrder matches the incoming order by repeatedly scanning for the best
// opposing order, then rests the remainder under the same time-in-force
// rules as the optimized book.
func (b *ReferenceBook) AddOrder(order orderbookv1.Order, now orderbookv1.Timestamp) []orderbookv1.TradeEvent {
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
			b.orders = append(b.orders, &o)
		}
	}

	return trades
}

// CancelOrder removes the order with the given id, returning false when
// it is unknown.
func (b *ReferenceBook) CancelOrder(orderID orderbookv1.OrderID) bool {
	for i, o := range b.orders {
		if o.OrderID == orderID {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceOrder cancels and re-adds the order with a new price and
// quantity, keeping the original id but losing time priority.
func (b *ReferenceBook) ReplaceOrder(orderID orderbookv1.OrderID, newPrice orderbookv1.Price, newQuantity orderbookv1.Quantity, now orderbookv1.Timestamp) []orderbookv1.TradeEvent {
	var existing *orderbookv1.Order
	for _, o := range b.orders {
		if o.OrderID == orderID {
			existing = o
			break
		}
	}
	if existing == nil {
		return nil
	}

	replacement := *existing
	replacement.Price = newPrice
	replacement.Quantity = newQuantity
	replacement.RemainingQuantity = newQuantity

	b.CancelOrder(orderID)
	return b.AddOrder(replacement, now)
}

// BestBid returns the highest live bid price, if any.
func (b *ReferenceBook) BestBid() (orderbookv1.Price, bool) {
	best := orderbookv1.InvalidPrice
	found := false
	for _, o := range b.orders {
		if o.IsBuy() && o.RemainingQuantity > 0 && (!found || o.Price > best) {
			best = o.Price
			found = true
		}
	}
	return best, found
}

// BestAsk returns the lowest live ask price, if any.
func (b *ReferenceBook) BestAsk() (orderbookv1.Price, bool) {
	best := orderbookv1.InvalidPrice
	found := false
	for _, o := range b.orders {
		if o.IsSell() && o.RemainingQuantity > 0 && (!found || o.Price < best) {
			best = o.Price
			found = true
		}
	}
	return best, found
}

// TopOfBook aggregates the sizes at the best prices with linear scans.
func (b *ReferenceBook) TopOfBook(timestamp orderbookv1.Timestamp) marketdatav1.TopOfBook {
	tob := marketdatav1.TopOfBook{
		Symbol:    b.symbol,
		BestBid:   orderbookv1.InvalidPrice,
		BestAsk:   orderbookv1.InvalidPrice,
		Timestamp: timestamp,
	}

	if bid, ok := b.BestBid(); ok {
		tob.BestBid = bid
		for _, o := range b.orders {
			if o.IsBuy() && o.Price == bid {
				tob.BidSize += o.RemainingQuantity
			}
		}
	}
	if ask, ok := b.BestAsk(); ok {
		tob.BestAsk = ask
		for _, o := range b.orders {
			if o.IsSell() && o.Price == ask {
				tob.AskSize += o.RemainingQuantity
			}
		}
	}

	return tob
}

// DepthSnapshot aggregates per-price quantities and order counts at query
// time, bids descending and asks ascending.
func (b *ReferenceBook) DepthSnapshot(depthLevels int, timestamp orderbookv1.Timestamp) marketdatav1.DepthSnapshot {
	snapshot := marketdatav1.DepthSnapshot{
		Symbol:         b.symbol,
		Timestamp:      timestamp,
		SequenceNumber: b.tradeCount,
	}

	type agg struct {
		quantity orderbookv1.Quantity
		count    uint32
	}

	bidAgg := make(map[orderbookv1.Price]*agg)
	askAgg := make(map[orderbookv1.Price]*agg)
	for _, o := range b.orders {
		m := askAgg
		if o.IsBuy() {
			m = bidAgg
		}
		a, ok := m[o.Price]
		if !ok {
			a = &agg{}
			m[o.Price] = a
		}
		a.quantity += o.RemainingQuantity
		a.count++
	}

	collect := func(m map[orderbookv1.Price]*agg, descending bool) []marketdatav1.PriceLevel {
		prices := make([]orderbookv1.Price, 0, len(m))
		for price := range m {
			prices = append(prices, price)
		}
		sort.Slice(prices, func(i, j int) bool {
			if descending {
				return prices[i] > prices[j]
			}
			return prices[i] < prices[j]
		})

		var out []marketdatav1.PriceLevel
		for _, price := range prices {
			if len(out) >= depthLevels {
				break
			}
			out = append(out, marketdatav1.PriceLevel{
				Price:      price,
				Quantity:   m[price].quantity,
				OrderCount: m[price].count,
			})
		}
		return out
	}

	snapshot.Bids = collect(bidAgg, true)
	snapshot.Asks = collect(askAgg, false)
	return snapshot
}

// FindOrder returns a copy of the live order with the given id.
func (b *ReferenceBook) FindOrder(orderID orderbookv1.OrderID) (orderbookv1.Order, bool) {
	for _, o := range b.orders {
		if o.OrderID == orderID {
			return *o, true
		}
	}
	return orderbookv1.Order{}, false
}

// ActiveOrderCount returns the number of live orders.
func (b *ReferenceBook) ActiveOrderCount() int {
	return len(b.orders)
}

// Stats computes the per-symbol statistics with full scans.
func (b *ReferenceBook) Stats() telemetryv1.SymbolStats {
	depth := b.DepthSnapshot(len(b.orders)+1, 0)

	stats := telemetryv1.SymbolStats{
		ActiveOrders: uint64(len(b.orders)),
		BidLevels:    uint64(len(depth.Bids)),
		AskLevels:    uint64(len(depth.Asks)),
		TradeVolume:  b.totalVolume,
		TradeCount:   b.tradeCount,
		BestBid:      orderbookv1.InvalidPrice,
		BestAsk:      orderbookv1.InvalidPrice,
	}

	if bid, ok := b.BestBid(); ok {
		stats.BestBid = bid
	}
	if ask, ok := b.BestAsk(); ok {
		stats.BestAsk = ask
	}
	for _, level := range depth.Bids {
		if level.Quantity > stats.MaxBidDepth {
			stats.MaxBidDepth = level.Quantity
		}
	}
	for _, level := range depth.Asks {
		if level.Quantity > stats.MaxAskDepth {
			stats.MaxAskDepth = level.Quantity
		}
	}

	return stats
}

// fokFillable sums the opposing quantity at acceptable prices, skipping
// resting orders that self-trade prevention would block.
func (b *ReferenceBook) fokFillable(o *orderbookv1.Order) bool {
	var available orderbookv1.Quantity
	for _, resting := range b.orders {
		if resting.Side == o.Side || !canTrade(o, resting) {
			continue
		}
		if b.wouldSelfTrade(o, resting) {
			continue
		}
		available += resting.RemainingQuantity
		if available >= o.RemainingQuantity {
			return true
		}
	}
	return false
}

func (b *ReferenceBook) matchOrder(o *orderbookv1.Order, now orderbookv1.Timestamp) []orderbookv1.TradeEvent {
	var trades []orderbookv1.TradeEvent

	for o.RemainingQuantity > 0 {
		best := b.findBestMatch(o)
		if best == nil {
			break
		}

		if b.wouldSelfTrade(o, best) {
			stop := b.handleSelfTrade(o, best)
			if stop {
				break
			}
			continue
		}

		fill := o.RemainingQuantity
		if best.RemainingQuantity < fill {
			fill = best.RemainingQuantity
		}

		trades = append(trades, b.createTrade(o, best, fill, best.Price, now))

		o.RemainingQuantity -= fill
		best.RemainingQuantity -= fill

		b.tradeCount++
		b.totalVolume += fill

		if best.RemainingQuantity == 0 {
			b.CancelOrder(best.OrderID)
		}
	}

	return trades
}

// findBestMatch scans every live order for the best opposing match by
// price, then arrival, exactly mirroring price-time priority.
func (b *ReferenceBook) findBestMatch(incoming *orderbookv1.Order) *orderbookv1.Order {
	var best *orderbookv1.Order

	for _, o := range b.orders {
		if o.Side == incoming.Side || o.RemainingQuantity == 0 {
			continue
		}
		if !canTrade(incoming, o) {
			continue
		}

		if best == nil {
			best = o
			continue
		}

		betterPrice := o.Price < best.Price
		if incoming.IsSell() {
			betterPrice = o.Price > best.Price
		}
		if betterPrice || (o.Price == best.Price && o.Arrival() < best.Arrival()) {
			best = o
		}
	}

	return best
}

func canTrade(incoming, resting *orderbookv1.Order) bool {
	if incoming.IsMarket() {
		return true
	}
	if incoming.IsBuy() {
		return incoming.Price >= resting.Price
	}
	return incoming.Price <= resting.Price
}

func (b *ReferenceBook) wouldSelfTrade(incoming, resting *orderbookv1.Order) bool {
	if b.stpPolicy == orderbookv1.STPNone {
		return false
	}
	return incoming.TraderID == resting.TraderID && incoming.TraderID != orderbookv1.InvalidTraderID
}

// handleSelfTrade applies the policy and reports whether matching must
// stop for the incoming order.
func (b *ReferenceBook) handleSelfTrade(incoming, resting *orderbookv1.Order) bool {
	switch b.stpPolicy {
	case orderbookv1.STPCancelIncoming:
		incoming.RemainingQuantity = 0
		return true
	case orderbookv1.STPCancelResting:
		b.CancelOrder(resting.OrderID)
		return false
	case orderbookv1.STPCancelBoth:
		incoming.RemainingQuantity = 0
		b.CancelOrder(resting.OrderID)
		return true
	}
	return false
}

func (b *ReferenceBook) createTrade(aggressive, passive *orderbookv1.Order, quantity orderbookv1.Quantity, price orderbookv1.Price, now orderbookv1.Timestamp) orderbookv1.TradeEvent {
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
