package engine

import (
	"testing"

	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
)

func setupBenchmarkEngine(b *testing.B) *Engine {
	eng := NewEngine(logger.NewNop())
	if !eng.AddSymbol(enginev1.DefaultSymbolConfig("BENCH")) {
		b.Fatal("failed to register benchmark symbol")
	}
	return eng
}

func benchRequest(i int) orderbookv1.NewOrderRequest {
	side := orderbookv1.SideBuy
	if i%2 == 0 {
		side = orderbookv1.SideSell
	}
	return orderbookv1.NewOrderRequest{
		OrderID:     orderbookv1.OrderID(i),
		TraderID:    orderbookv1.TraderID(i%50 + 1),
		Symbol:      "BENCH",
		Side:        side,
		OrderType:   orderbookv1.OrderTypeLimit,
		Price:       orderbookv1.Price(10000 + i%20 - 10),
		Quantity:    orderbookv1.Quantity(i%100 + 1),
		TimeInForce: orderbookv1.TIFDay,
		Timestamp:   orderbookv1.Timestamp(i + 1),
	}
}

func BenchmarkEngine_HandleNewOrder(b *testing.B) {
	eng := setupBenchmarkEngine(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.HandleNewOrder(benchRequest(i + 1))
	}
}

func BenchmarkEngine_HandleNewOrderDeterministic(b *testing.B) {
	options := DefaultEngineOptions()
	options.EventLogPath = b.TempDir() + "/events.log"
	eng := NewEngineWithOptions(logger.NewNop(), options)
	if !eng.AddSymbol(enginev1.DefaultSymbolConfig("BENCH")) {
		b.Fatal("failed to register benchmark symbol")
	}
	eng.SetDeterministic(true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.HandleNewOrder(benchRequest(i + 1))
	}
	b.StopTimer()
	_ = eng.Close()
}

func BenchmarkEngine_TopOfBook(b *testing.B) {
	eng := setupBenchmarkEngine(b)
	for i := 1; i <= 1000; i++ {
		eng.HandleNewOrder(benchRequest(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.TopOfBook("BENCH", 1)
	}
}
