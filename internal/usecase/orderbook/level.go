package orderbook

import (
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// Level represents a single price level: a FIFO queue of resting orders
// plus a cached total of their remaining quantities. A level with an
// empty queue is never a member of its ladder.
type Level struct {
	price         orderbookv1.Price
	orders        []*orderbookv1.Order
	totalQuantity orderbookv1.Quantity
}

// NewLevel creates an empty level at the given price.
func NewLevel(price orderbookv1.Price) *Level {
	return &Level{price: price}
}

// Price returns the price of this level.
func (l *Level) Price() orderbookv1.Price {
	return l.price
}

// TotalQuantity returns the cached sum of remaining quantities.
func (l *Level) TotalQuantity() orderbookv1.Quantity {
	return l.totalQuantity
}

// OrderCount returns the number of resting orders at this level.
func (l *Level) OrderCount() int {
	return len(l.orders)
}

// Empty checks if the level holds no orders.
func (l *Level) Empty() bool {
	return len(l.orders) == 0
}

// Front returns the oldest resting order, or nil when empty.
func (l *Level) Front() *orderbookv1.Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// Enqueue appends an order at the back of the FIFO queue.
func (l *Level) Enqueue(order *orderbookv1.Order) {
	l.orders = append(l.orders, order)
	l.totalQuantity += order.RemainingQuantity
}

// PopFront removes the oldest order. The caller must have driven its
// remaining quantity to zero or accounted for it via Reduce.
func (l *Level) PopFront() {
	if len(l.orders) == 0 {
		return
	}
	l.totalQuantity -= l.orders[0].RemainingQuantity
	l.orders = l.orders[1:]
}

// Remove unlinks the given order wherever it sits in the queue.
func (l *Level) Remove(order *orderbookv1.Order) {
	for i, o := range l.orders {
		if o == order {
			l.totalQuantity -= o.RemainingQuantity
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return
		}
	}
}

// Reduce subtracts a fill from the cached total after the order's
// remaining quantity has been decremented by the same amount.
func (l *Level) Reduce(quantity orderbookv1.Quantity) {
	l.totalQuantity -= quantity
}

// Orders returns a copy of the queue in FIFO order.
func (l *Level) Orders() []*orderbookv1.Order {
	out := make([]*orderbookv1.Order, len(l.orders))
	copy(out, l.orders)
	return out
}
