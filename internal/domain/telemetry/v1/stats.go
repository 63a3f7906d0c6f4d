package telemetryv1

import (
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// SymbolStats represents the per-symbol book statistics published by the
// engine telemetry after every handled request.
type SymbolStats struct {
	ActiveOrders uint64               `json:"active_orders"`
	BidLevels    uint64               `json:"bid_levels"`
	AskLevels    uint64               `json:"ask_levels"`
	TradeVolume  orderbookv1.Quantity `json:"trade_volume"`
	TradeCount   uint64               `json:"trade_count"`
	MaxBidDepth  orderbookv1.Quantity `json:"max_bid_depth"`
	MaxAskDepth  orderbookv1.Quantity `json:"max_ask_depth"`
	BestBid      orderbookv1.Price    `json:"best_bid"`
	BestAsk      orderbookv1.Price    `json:"best_ask"`
}
