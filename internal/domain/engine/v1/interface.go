package enginev1

import (
	marketdatav1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/marketdata/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	telemetryv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/telemetry/v1"
)

// Book is the contract shared by the optimized order book and the
// reference book. Every operation is total: cancel of an unknown id
// returns false, replace of an unknown id returns an empty trade list.
type Book interface {
	AddOrder(order orderbookv1.Order, now orderbookv1.Timestamp) []orderbookv1.TradeEvent
	CancelOrder(orderID orderbookv1.OrderID) bool
	ReplaceOrder(orderID orderbookv1.OrderID, newPrice orderbookv1.Price, newQuantity orderbookv1.Quantity, now orderbookv1.Timestamp) []orderbookv1.TradeEvent

	BestBid() (orderbookv1.Price, bool)
	BestAsk() (orderbookv1.Price, bool)
	TopOfBook(timestamp orderbookv1.Timestamp) marketdatav1.TopOfBook
	DepthSnapshot(depthLevels int, timestamp orderbookv1.Timestamp) marketdatav1.DepthSnapshot

	FindOrder(orderID orderbookv1.OrderID) (orderbookv1.Order, bool)
	ActiveOrderCount() int
	Stats() telemetryv1.SymbolStats
	Symbol() string
}

// Listener receives engine events synchronously on the matching thread.
// Implementations must not re-enter the engine and must not panic through
// the engine boundary.
type Listener interface {
	OnOrderAccepted(event orderbookv1.OrderAcceptedEvent)
	OnOrderRejected(event orderbookv1.OrderRejectedEvent)
	OnOrderCancelled(event orderbookv1.OrderCancelledEvent)
	OnOrderReplaced(event orderbookv1.OrderReplacedEvent)
	OnTrade(event orderbookv1.TradeEvent)
	OnBookUpdate(event orderbookv1.BookUpdateEvent)
}

// NopListener provides no-op implementations of every Listener method so
// callers can embed it and override only what they need.
type NopListener struct{}

// OnOrderAccepted implements Listener.
func (NopListener) OnOrderAccepted(orderbookv1.OrderAcceptedEvent) {}

// OnOrderRejected implements Listener.
func (NopListener) OnOrderRejected(orderbookv1.OrderRejectedEvent) {}

// OnOrderCancelled implements Listener.
func (NopListener) OnOrderCancelled(orderbookv1.OrderCancelledEvent) {}

// OnOrderReplaced implements Listener.
func (NopListener) OnOrderReplaced(orderbookv1.OrderReplacedEvent) {}

// OnTrade implements Listener.
func (NopListener) OnTrade(orderbookv1.TradeEvent) {}

// OnBookUpdate implements Listener.
func (NopListener) OnBookUpdate(orderbookv1.BookUpdateEvent) {}
