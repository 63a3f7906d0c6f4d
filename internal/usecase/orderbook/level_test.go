package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func makeRestingOrder(id orderbookv1.OrderID, price orderbookv1.Price, quantity orderbookv1.Quantity) *orderbookv1.Order {
	return &orderbookv1.Order{
		OrderID:           id,
		TraderID:          100,
		Symbol:            "TEST",
		Side:              orderbookv1.SideSell,
		OrderType:         orderbookv1.OrderTypeLimit,
		Price:             price,
		Quantity:          quantity,
		RemainingQuantity: quantity,
	}
}

func TestLevel_EnqueueKeepsFIFOOrder(t *testing.T) {
	level := NewLevel(10000)

	first := makeRestingOrder(1, 10000, 100)
	second := makeRestingOrder(2, 10000, 200)
	level.Enqueue(first)
	level.Enqueue(second)

	assert.Equal(t, 2, level.OrderCount())
	assert.Equal(t, orderbookv1.Quantity(300), level.TotalQuantity())
	assert.Same(t, first, level.Front())
}

func TestLevel_PopFront(t *testing.T) {
	level := NewLevel(10000)

	first := makeRestingOrder(1, 10000, 100)
	second := makeRestingOrder(2, 10000, 200)
	level.Enqueue(first)
	level.Enqueue(second)

	level.PopFront()

	assert.Equal(t, 1, level.OrderCount())
	assert.Equal(t, orderbookv1.Quantity(200), level.TotalQuantity())
	assert.Same(t, second, level.Front())
}

func TestLevel_RemoveMiddleOrder(t *testing.T) {
	level := NewLevel(10000)

	orders := []*orderbookv1.Order{
		makeRestingOrder(1, 10000, 100),
		makeRestingOrder(2, 10000, 200),
		makeRestingOrder(3, 10000, 300),
	}
	for _, o := range orders {
		level.Enqueue(o)
	}

	level.Remove(orders[1])

	require.Equal(t, 2, level.OrderCount())
	assert.Equal(t, orderbookv1.Quantity(400), level.TotalQuantity())

	queued := level.Orders()
	assert.Same(t, orders[0], queued[0])
	assert.Same(t, orders[2], queued[1])
}

func TestLevel_ReduceTracksPartialFills(t *testing.T) {
	level := NewLevel(10000)

	order := makeRestingOrder(1, 10000, 100)
	level.Enqueue(order)

	order.RemainingQuantity -= 40
	level.Reduce(40)

	assert.Equal(t, orderbookv1.Quantity(60), level.TotalQuantity())
}

func TestLevel_EmptyLevel(t *testing.T) {
	level := NewLevel(10000)

	assert.True(t, level.Empty())
	assert.Nil(t, level.Front())
	level.PopFront() // no-op on empty
	assert.True(t, level.Empty())
}
