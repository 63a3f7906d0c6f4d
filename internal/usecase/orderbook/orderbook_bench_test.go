package orderbook

import (
	"testing"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func benchOrder(id int) orderbookv1.Order {
	side := orderbookv1.SideBuy
	if id%2 == 0 {
		side = orderbookv1.SideSell
	}
	quantity := orderbookv1.Quantity(id%100 + 1)
	return orderbookv1.Order{
		OrderID:           orderbookv1.OrderID(id),
		TraderID:          orderbookv1.TraderID(id%50 + 1),
		Symbol:            "BENCH",
		Side:              side,
		OrderType:         orderbookv1.OrderTypeLimit,
		Price:             orderbookv1.Price(10000 + id%20 - 10),
		Quantity:          quantity,
		RemainingQuantity: quantity,
		TimeInForce:       orderbookv1.TIFDay,
	}
}

func BenchmarkOrderBook_AddOrder(b *testing.B) {
	book := NewOrderBook("BENCH", orderbookv1.STPNone)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.AddOrder(benchOrder(i+1), orderbookv1.Timestamp(i+1))
	}
}

func BenchmarkOrderBook_AddCancel(b *testing.B) {
	book := NewOrderBook("BENCH", orderbookv1.STPNone)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		order := benchOrder(i + 1)
		book.AddOrder(order, orderbookv1.Timestamp(i+1))
		book.CancelOrder(order.OrderID)
	}
}

func BenchmarkOrderBook_DepthSnapshot(b *testing.B) {
	book := NewOrderBook("BENCH", orderbookv1.STPNone)
	for i := 1; i <= 1000; i++ {
		book.AddOrder(benchOrder(i), orderbookv1.Timestamp(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.DepthSnapshot(10, 0)
	}
}
