package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	telemetryv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/telemetry/v1"
)

func TestTelemetry_OrderCounters(t *testing.T) {
	tel := New()

	tel.RecordOrderProcessed()
	tel.RecordOrderProcessed()
	tel.RecordOrderAccepted()
	tel.RecordOrderRejected()
	tel.RecordOrderCancelled()

	assert.Equal(t, uint64(2), tel.OrdersProcessed())
	assert.Equal(t, uint64(1), tel.OrdersAccepted())
	assert.Equal(t, uint64(1), tel.OrdersRejected())
	assert.Equal(t, uint64(1), tel.OrdersCancelled())
}

func TestTelemetry_TradesAccumulatePerSymbol(t *testing.T) {
	tel := New()

	tel.RecordTrade("AAPL", 100)
	tel.RecordTrade("AAPL", 50)
	tel.RecordTrade("MSFT", 25)

	assert.Equal(t, uint64(3), tel.TotalTrades())

	stats, ok := tel.SymbolStats("AAPL")
	require.True(t, ok)
	assert.Equal(t, uint64(2), stats.TradeCount)
	assert.Equal(t, uint64(150), stats.TradeVolume)
}

func TestTelemetry_Latency(t *testing.T) {
	tel := New()

	assert.Equal(t, uint64(0), tel.AvgLatencyNs())
	assert.Equal(t, uint64(0), tel.MinLatencyNs())

	tel.RecordLatency(100)
	tel.RecordLatency(300)
	tel.RecordLatency(200)

	assert.Equal(t, uint64(200), tel.AvgLatencyNs())
	assert.Equal(t, uint64(100), tel.MinLatencyNs())
	assert.Equal(t, uint64(300), tel.MaxLatencyNs())
}

func TestTelemetry_UpdateSymbolStats(t *testing.T) {
	tel := New()

	tel.UpdateSymbolStats("AAPL", telemetryv1.SymbolStats{
		ActiveOrders: 3,
		BidLevels:    2,
		AskLevels:    1,
		BestBid:      9999,
		BestAsk:      10001,
	})

	stats, ok := tel.SymbolStats("AAPL")
	require.True(t, ok)
	assert.Equal(t, uint64(3), stats.ActiveOrders)
	assert.Equal(t, int64(9999), stats.BestBid)
}

func TestTelemetry_ToJSON(t *testing.T) {
	tel := New()
	tel.RecordOrderProcessed()
	tel.RecordTrade("AAPL", 42)
	tel.RecordLatency(1000)

	data, err := tel.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 1, decoded["orders_processed"])
	assert.EqualValues(t, 1, decoded["total_trades"])
	assert.EqualValues(t, 1000, decoded["avg_latency_ns"])
	assert.Contains(t, decoded, "symbols")
	assert.Contains(t, decoded, "memory_bytes_estimate")
}

func TestTelemetry_Reset(t *testing.T) {
	tel := New()
	tel.RecordOrderProcessed()
	tel.RecordTrade("AAPL", 42)
	tel.RecordLatency(500)

	tel.Reset()

	assert.Equal(t, uint64(0), tel.OrdersProcessed())
	assert.Equal(t, uint64(0), tel.TotalTrades())
	assert.Equal(t, uint64(0), tel.MinLatencyNs())
	_, ok := tel.SymbolStats("AAPL")
	assert.False(t, ok)
}
