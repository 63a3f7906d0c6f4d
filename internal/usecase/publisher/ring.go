package publisher

import (
	"sync/atomic"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// Ring is a single-producer single-consumer ring buffer of trade events.
// Capacity is rounded up to a power of two and one slot stays reserved to
// distinguish full from empty. Enqueue and dequeue are wait-free; the
// head and tail indices live on separate cache lines.
type Ring struct {
	capacity uint64
	mask     uint64
	buffer   []orderbookv1.TradeEvent

	_    [56]byte
	head atomic.Uint64
	_    [56]byte
	tail atomic.Uint64
}

// NewRing creates a ring holding up to capacity-1 events after rounding
// capacity up to a power of two.
func NewRing(capacity int) *Ring {
	size := roundUpPowerOfTwo(capacity)
	return &Ring{
		capacity: size,
		mask:     size - 1,
		buffer:   make([]orderbookv1.TradeEvent, size),
	}
}

// TryEnqueue appends an event, returning false when the ring is full.
// Producer side only.
func (r *Ring) TryEnqueue(event orderbookv1.TradeEvent) bool {
	tail := r.tail.Load()
	next := (tail + 1) & r.mask

	if next == r.head.Load() {
		return false
	}

	r.buffer[tail] = event
	r.tail.Store(next)
	return true
}

// TryDequeue removes the oldest event, returning false when the ring is
// empty. Consumer side only.
func (r *Ring) TryDequeue() (orderbookv1.TradeEvent, bool) {
	head := r.head.Load()

	if head == r.tail.Load() {
		return orderbookv1.TradeEvent{}, false
	}

	event := r.buffer[head]
	r.head.Store((head + 1) & r.mask)
	return event, true
}

// Empty checks if the ring holds no events.
func (r *Ring) Empty() bool {
	return r.head.Load() == r.tail.Load()
}

// Size returns the approximate number of buffered events.
func (r *Ring) Size() uint64 {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail >= head {
		return tail - head
	}
	return r.capacity - head + tail
}

// Capacity returns how many events the ring can hold.
func (r *Ring) Capacity() uint64 {
	return r.capacity - 1
}

func roundUpPowerOfTwo(n int) uint64 {
	if n <= 1 {
		return 2
	}
	v := uint64(n - 1)
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}
