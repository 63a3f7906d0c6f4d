// Package telemetry keeps the engine-wide counters updated inline on the
// matching path: order and trade totals, latency extremes and per-symbol
// book statistics.
package telemetry

import (
	"encoding/json"
	"math"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	telemetryv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/telemetry/v1"
)

// Telemetry accumulates engine metrics. It is owned by a single engine
// instance and mutated only on the matching thread.
type Telemetry struct {
	ordersProcessed uint64
	ordersAccepted  uint64
	ordersRejected  uint64
	ordersCancelled uint64
	totalTrades     uint64

	totalLatencyNs uint64
	latencyCount   uint64
	maxLatencyNs   uint64
	minLatencyNs   uint64

	symbolStats map[string]telemetryv1.SymbolStats
}

// New creates an empty telemetry accumulator.
func New() *Telemetry {
	return &Telemetry{
		minLatencyNs: math.MaxUint64,
		symbolStats:  make(map[string]telemetryv1.SymbolStats),
	}
}

// RecordOrderProcessed counts a handled request of any kind.
func (t *Telemetry) RecordOrderProcessed() {
	t.ordersProcessed++
}

// RecordOrderAccepted counts an accepted new order.
func (t *Telemetry) RecordOrderAccepted() {
	t.ordersAccepted++
}

// RecordOrderRejected counts a rejected request.
func (t *Telemetry) RecordOrderRejected() {
	t.ordersRejected++
}

// RecordOrderCancelled counts a successful cancellation.
func (t *Telemetry) RecordOrderCancelled() {
	t.ordersCancelled++
}

// RecordTrade counts a trade and adds it to the symbol's totals.
func (t *Telemetry) RecordTrade(symbol string, quantity orderbookv1.Quantity) {
	t.totalTrades++

	stats := t.symbolStats[symbol]
	stats.TradeCount++
	stats.TradeVolume += quantity
	t.symbolStats[symbol] = stats
}

// RecordLatency folds one end-to-end handle latency into the aggregates.
func (t *Telemetry) RecordLatency(latencyNs uint64) {
	t.totalLatencyNs += latencyNs
	t.latencyCount++

	if latencyNs > t.maxLatencyNs {
		t.maxLatencyNs = latencyNs
	}
	if latencyNs < t.minLatencyNs {
		t.minLatencyNs = latencyNs
	}
}

// UpdateSymbolStats replaces the book-derived fields of a symbol's stats,
// keeping the trade totals accumulated here.
func (t *Telemetry) UpdateSymbolStats(symbol string, stats telemetryv1.SymbolStats) {
	if current, ok := t.symbolStats[symbol]; ok {
		stats.TradeVolume = current.TradeVolume
		stats.TradeCount = current.TradeCount
	}
	t.symbolStats[symbol] = stats
}

// OrdersProcessed returns the processed request count.
func (t *Telemetry) OrdersProcessed() uint64 { return t.ordersProcessed }

// OrdersAccepted returns the accepted order count.
func (t *Telemetry) OrdersAccepted() uint64 { return t.ordersAccepted }

// OrdersRejected returns the rejected request count.
func (t *Telemetry) OrdersRejected() uint64 { return t.ordersRejected }

// OrdersCancelled returns the cancelled order count.
func (t *Telemetry) OrdersCancelled() uint64 { return t.ordersCancelled }

// TotalTrades returns the total trade count.
func (t *Telemetry) TotalTrades() uint64 { return t.totalTrades }

// AvgLatencyNs returns the mean recorded latency, zero before the first
// sample.
func (t *Telemetry) AvgLatencyNs() uint64 {
	if t.latencyCount == 0 {
		return 0
	}
	return t.totalLatencyNs / t.latencyCount
}

// MaxLatencyNs returns the highest recorded latency.
func (t *Telemetry) MaxLatencyNs() uint64 { return t.maxLatencyNs }

// MinLatencyNs returns the lowest recorded latency, zero before the first
// sample.
func (t *Telemetry) MinLatencyNs() uint64 {
	if t.minLatencyNs == math.MaxUint64 {
		return 0
	}
	return t.minLatencyNs
}

// SymbolStats returns the stats for one symbol.
func (t *Telemetry) SymbolStats(symbol string) (telemetryv1.SymbolStats, bool) {
	stats, ok := t.symbolStats[symbol]
	return stats, ok
}

// snapshot is the JSON shape of the telemetry export.
type snapshot struct {
	OrdersProcessed uint64                             `json:"orders_processed"`
	OrdersAccepted  uint64                             `json:"orders_accepted"`
	OrdersRejected  uint64                             `json:"orders_rejected"`
	OrdersCancelled uint64                             `json:"orders_cancelled"`
	TotalTrades     uint64                             `json:"total_trades"`
	AvgLatencyNs    uint64                             `json:"avg_latency_ns"`
	MaxLatencyNs    uint64                             `json:"max_latency_ns"`
	MinLatencyNs    uint64                             `json:"min_latency_ns"`
	Symbols         map[string]telemetryv1.SymbolStats `json:"symbols"`
	MemoryEstimate  uint64                             `json:"memory_bytes_estimate"`
}

// ToJSON exports every metric as a JSON object.
func (t *Telemetry) ToJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		OrdersProcessed: t.ordersProcessed,
		OrdersAccepted:  t.ordersAccepted,
		OrdersRejected:  t.ordersRejected,
		OrdersCancelled: t.ordersCancelled,
		TotalTrades:     t.totalTrades,
		AvgLatencyNs:    t.AvgLatencyNs(),
		MaxLatencyNs:    t.maxLatencyNs,
		MinLatencyNs:    t.MinLatencyNs(),
		Symbols:         t.symbolStats,
		MemoryEstimate:  t.EstimateMemoryBytes(),
	})
}

// Reset clears every metric.
func (t *Telemetry) Reset() {
	*t = Telemetry{
		minLatencyNs: math.MaxUint64,
		symbolStats:  make(map[string]telemetryv1.SymbolStats),
	}
}

// EstimateMemoryBytes returns a rough footprint of the accumulator.
func (t *Telemetry) EstimateMemoryBytes() uint64 {
	const perSymbolOverhead = 160
	return 128 + uint64(len(t.symbolStats))*perSymbolOverhead
}
