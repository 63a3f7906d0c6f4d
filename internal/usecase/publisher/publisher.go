// Package publisher decouples market data delivery from the matching
// thread: the engine enqueues trade events onto an SPSC ring and a
// consumer goroutine drains them to a callback. KafkaTrades, a separate
// engine listener, writes trades to a Kafka topic directly from OnTrade.
package publisher

import (
	"sync"
	"sync/atomic"
	"time"

	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
)

// DefaultRingCapacity sizes the ring when no capacity is given.
const DefaultRingCapacity = 65536

var _ enginev1.Listener = (*MarketData)(nil)

// EventCallback receives drained trade events on the consumer goroutine.
type EventCallback func(event orderbookv1.TradeEvent)

// MarketData fans trade events out to a consumer thread over a wait-free
// ring. PublishTrade never blocks: a full ring drops the event and
// increments the drop counter.
type MarketData struct {
	enginev1.NopListener

	ring   *Ring
	logger *logger.Logger

	running   atomic.Bool
	published atomic.Uint64
	dropped   atomic.Uint64

	wg sync.WaitGroup
}

// NewMarketData creates a stopped publisher with the given ring capacity.
func NewMarketData(queueCapacity int, log *logger.Logger) *MarketData {
	if queueCapacity <= 0 {
		queueCapacity = DefaultRingCapacity
	}
	return &MarketData{
		ring:   NewRing(queueCapacity),
		logger: log,
	}
}

// Start launches the consumer goroutine. A second Start is a no-op until
// Stop is called.
func (p *MarketData) Start(callback EventCallback) {
	if !p.running.CompareAndSwap(false, true) {
		return
	}

	p.wg.Add(1)
	go p.consume(callback)

	p.logger.Info("Market data publisher started", logger.Field{
		Key:   "capacity",
		Value: p.ring.Capacity(),
	})
}

// Stop signals the consumer to exit and waits for it to drain the ring.
func (p *MarketData) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.wg.Wait()

	p.logger.Info("Market data publisher stopped",
		logger.Field{Key: "published", Value: p.published.Load()},
		logger.Field{Key: "dropped", Value: p.dropped.Load()},
	)
}

// PublishTrade enqueues a trade for the consumer. It returns false and
// counts a drop when the publisher is stopped or the ring is full.
func (p *MarketData) PublishTrade(event orderbookv1.TradeEvent) bool {
	if !p.running.Load() {
		p.dropped.Add(1)
		return false
	}

	if !p.ring.TryEnqueue(event) {
		p.dropped.Add(1)
		return false
	}

	p.published.Add(1)
	return true
}

// OnTrade implements the engine Listener by enqueueing the trade.
func (p *MarketData) OnTrade(event orderbookv1.TradeEvent) {
	p.PublishTrade(event)
}

// EventsPublished returns how many events were enqueued.
func (p *MarketData) EventsPublished() uint64 {
	return p.published.Load()
}

// EventsDropped returns how many events were dropped.
func (p *MarketData) EventsDropped() uint64 {
	return p.dropped.Load()
}

// IsRunning checks if the consumer goroutine is active.
func (p *MarketData) IsRunning() bool {
	return p.running.Load()
}

func (p *MarketData) consume(callback EventCallback) {
	defer p.wg.Done()

	for p.running.Load() {
		event, ok := p.ring.TryDequeue()
		if !ok {
			// ring empty, back off briefly instead of spinning
			time.Sleep(10 * time.Microsecond)
			continue
		}
		callback(event)
	}

	// drain whatever arrived before the stop
	for {
		event, ok := p.ring.TryDequeue()
		if !ok {
			return
		}
		callback(event)
	}
}
