package refbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func newOrder(id orderbookv1.OrderID, trader orderbookv1.TraderID, side orderbookv1.Side, price orderbookv1.Price, quantity orderbookv1.Quantity) orderbookv1.Order {
	return orderbookv1.Order{
		OrderID:           id,
		TraderID:          trader,
		Symbol:            "TEST",
		Side:              side,
		OrderType:         orderbookv1.OrderTypeLimit,
		Price:             price,
		Quantity:          quantity,
		RemainingQuantity: quantity,
		TimeInForce:       orderbookv1.TIFDay,
	}
}

func TestReferenceBook_SimpleCross(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPCancelIncoming)

	require.Empty(t, book.AddOrder(newOrder(1, 100, orderbookv1.SideSell, 10000, 100), 1))

	trades := book.AddOrder(newOrder(2, 101, orderbookv1.SideBuy, 10000, 100), 2)
	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.Price(10000), trades[0].Price)
	assert.Equal(t, orderbookv1.OrderID(1), trades[0].PassiveOrderID)
	assert.Equal(t, 0, book.ActiveOrderCount())
}

func TestReferenceBook_PriceThenTimePriority(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPNone)

	book.AddOrder(newOrder(1, 100, orderbookv1.SideSell, 10001, 50), 1)
	book.AddOrder(newOrder(2, 101, orderbookv1.SideSell, 10000, 50), 2)
	book.AddOrder(newOrder(3, 102, orderbookv1.SideSell, 10000, 50), 3)

	trades := book.AddOrder(newOrder(4, 103, orderbookv1.SideBuy, 10001, 150), 4)

	require.Len(t, trades, 3)
	// best price first, then oldest at the same price
	assert.Equal(t, orderbookv1.OrderID(2), trades[0].PassiveOrderID)
	assert.Equal(t, orderbookv1.OrderID(3), trades[1].PassiveOrderID)
	assert.Equal(t, orderbookv1.OrderID(1), trades[2].PassiveOrderID)
}

func TestReferenceBook_CancelUnknown(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPNone)
	assert.False(t, book.CancelOrder(42))
}

func TestReferenceBook_ReplaceLosesPriority(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPNone)

	book.AddOrder(newOrder(1, 100, orderbookv1.SideBuy, 10000, 100), 1)
	book.AddOrder(newOrder(2, 101, orderbookv1.SideBuy, 10000, 100), 2)

	require.Empty(t, book.ReplaceOrder(1, 10000, 100, 3))

	trades := book.AddOrder(newOrder(3, 102, orderbookv1.SideSell, 10000, 100), 4)
	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.OrderID(2), trades[0].PassiveOrderID)
}

func TestReferenceBook_DepthAggregation(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPNone)

	book.AddOrder(newOrder(1, 100, orderbookv1.SideBuy, 9998, 100), 1)
	book.AddOrder(newOrder(2, 101, orderbookv1.SideBuy, 9998, 50), 2)
	book.AddOrder(newOrder(3, 102, orderbookv1.SideBuy, 9999, 25), 3)
	book.AddOrder(newOrder(4, 103, orderbookv1.SideSell, 10001, 10), 4)

	depth := book.DepthSnapshot(5, 0)

	require.Len(t, depth.Bids, 2)
	assert.Equal(t, orderbookv1.Price(9999), depth.Bids[0].Price)
	assert.Equal(t, orderbookv1.Price(9998), depth.Bids[1].Price)
	assert.Equal(t, orderbookv1.Quantity(150), depth.Bids[1].Quantity)
	assert.Equal(t, uint32(2), depth.Bids[1].OrderCount)
	require.Len(t, depth.Asks, 1)
}

func TestReferenceBook_FOKNotFillable(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPNone)

	book.AddOrder(newOrder(1, 100, orderbookv1.SideSell, 10000, 50), 1)

	fok := newOrder(2, 101, orderbookv1.SideBuy, 10000, 100)
	fok.TimeInForce = orderbookv1.TIFFOK
	trades := book.AddOrder(fok, 2)

	assert.Empty(t, trades)
	assert.Equal(t, 1, book.ActiveOrderCount())
}

func TestReferenceBook_FOKIgnoresSTPBlockedLiquidity(t *testing.T) {
	book := NewReferenceBook("TEST", orderbookv1.STPCancelResting)

	book.AddOrder(newOrder(1, 7, orderbookv1.SideSell, 10000, 50), 1)
	book.AddOrder(newOrder(2, 8, orderbookv1.SideSell, 10000, 50), 2)

	fok := newOrder(3, 7, orderbookv1.SideBuy, 10000, 100)
	fok.TimeInForce = orderbookv1.TIFFOK
	trades := book.AddOrder(fok, 3)

	// trader 7's own 50 cannot fill the order, so the book is untouched
	assert.Empty(t, trades)
	assert.Equal(t, 2, book.ActiveOrderCount())

	fillable := newOrder(4, 7, orderbookv1.SideBuy, 10000, 50)
	fillable.TimeInForce = orderbookv1.TIFFOK
	trades = book.AddOrder(fillable, 4)

	require.Len(t, trades, 1)
	assert.Equal(t, orderbookv1.OrderID(2), trades[0].PassiveOrderID)
	_, ok := book.FindOrder(1)
	assert.False(t, ok)
}
