package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func tradeWithID(id orderbookv1.TradeID) orderbookv1.TradeEvent {
	return orderbookv1.TradeEvent{TradeID: id, Symbol: "TEST"}
}

func TestRing_EnqueueDequeue(t *testing.T) {
	ring := NewRing(8)

	assert.True(t, ring.Empty())

	require.True(t, ring.TryEnqueue(tradeWithID(1)))
	require.True(t, ring.TryEnqueue(tradeWithID(2)))
	assert.Equal(t, uint64(2), ring.Size())

	event, ok := ring.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, orderbookv1.TradeID(1), event.TradeID)

	event, ok = ring.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, orderbookv1.TradeID(2), event.TradeID)

	_, ok = ring.TryDequeue()
	assert.False(t, ok)
}

func TestRing_FullRejectsEnqueue(t *testing.T) {
	ring := NewRing(4)

	for i := 0; i < int(ring.Capacity()); i++ {
		require.True(t, ring.TryEnqueue(tradeWithID(orderbookv1.TradeID(i))))
	}

	assert.False(t, ring.TryEnqueue(tradeWithID(99)))
}

func TestRing_WrapAround(t *testing.T) {
	ring := NewRing(4)

	next := orderbookv1.TradeID(1)
	expect := orderbookv1.TradeID(1)
	for round := 0; round < 10; round++ {
		require.True(t, ring.TryEnqueue(tradeWithID(next)))
		next++
		require.True(t, ring.TryEnqueue(tradeWithID(next)))
		next++

		for i := 0; i < 2; i++ {
			event, ok := ring.TryDequeue()
			require.True(t, ok)
			require.Equal(t, expect, event.TradeID)
			expect++
		}
	}

	assert.True(t, ring.Empty())
}

func TestRing_CapacityRoundsUpToPowerOfTwo(t *testing.T) {
	ring := NewRing(5)
	assert.Equal(t, uint64(7), ring.Capacity())

	ring = NewRing(0)
	assert.Equal(t, uint64(1), ring.Capacity())
}

func TestRing_ConcurrentProducerConsumer(t *testing.T) {
	ring := NewRing(64)
	const total = 10000

	done := make(chan uint64)
	go func() {
		var received uint64
		var last orderbookv1.TradeID
		for received < total {
			event, ok := ring.TryDequeue()
			if !ok {
				continue
			}
			if event.TradeID <= last {
				done <- 0
				return
			}
			last = event.TradeID
			received++
		}
		done <- received
	}()

	for i := 1; i <= total; {
		if ring.TryEnqueue(tradeWithID(orderbookv1.TradeID(i))) {
			i++
		}
	}

	assert.Equal(t, uint64(total), <-done)
}
