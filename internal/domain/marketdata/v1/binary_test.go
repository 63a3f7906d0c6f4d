package marketdatav1

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func sampleSnapshot() *DepthSnapshot {
	return &DepthSnapshot{
		Symbol: "AAPL",
		Bids: []PriceLevel{
			{Price: 9999, Quantity: 100, OrderCount: 2},
			{Price: 9998, Quantity: 250, OrderCount: 3},
		},
		Asks: []PriceLevel{
			{Price: 10001, Quantity: 75, OrderCount: 1},
		},
		Timestamp:      1638360000000,
		SequenceNumber: 42,
	}
}

func TestBinary_RoundTrip(t *testing.T) {
	original := sampleSnapshot()

	decoded, err := FromBinary(original.ToBinary())
	require.NoError(t, err)

	assert.Equal(t, original.Symbol, decoded.Symbol)
	assert.Equal(t, original.Timestamp, decoded.Timestamp)
	assert.Equal(t, original.SequenceNumber, decoded.SequenceNumber)

	require.Len(t, decoded.Bids, 2)
	require.Len(t, decoded.Asks, 1)
	for i, level := range original.Bids {
		assert.Equal(t, level.Price, decoded.Bids[i].Price)
		assert.Equal(t, level.Quantity, decoded.Bids[i].Quantity)
		// order counts are not carried on the wire
		assert.Equal(t, uint32(0), decoded.Bids[i].OrderCount)
	}
	assert.Equal(t, original.Asks[0].Price, decoded.Asks[0].Price)
	assert.Equal(t, original.Asks[0].Quantity, decoded.Asks[0].Quantity)
}

func TestBinary_NegativePriceSurvives(t *testing.T) {
	snapshot := &DepthSnapshot{
		Symbol: "SPREAD",
		Bids:   []PriceLevel{{Price: -5, Quantity: 10}},
	}

	decoded, err := FromBinary(snapshot.ToBinary())
	require.NoError(t, err)
	assert.Equal(t, orderbookv1.Price(-5), decoded.Bids[0].Price)
}

func TestBinary_HeaderLayout(t *testing.T) {
	data := sampleSnapshot().ToBinary()

	require.GreaterOrEqual(t, len(data), 32)
	assert.Equal(t, SnapshotMagic, binary.BigEndian.Uint32(data[0:4]))
	assert.Equal(t, SnapshotVersion, binary.BigEndian.Uint16(data[4:6]))
	assert.Equal(t, uint8(4), data[6]) // len("AAPL")
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(data[8:12]))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(data[12:16]))

	// header + symbol + 3 levels + checksum
	assert.Equal(t, 32+4+3*16+4, len(data))
}

func TestBinary_DecodeErrors(t *testing.T) {
	valid := sampleSnapshot().ToBinary()

	t.Run("too short", func(t *testing.T) {
		_, err := FromBinary(valid[:16])
		assert.ErrorIs(t, err, ErrSnapshotTooShort)
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupted := append([]byte(nil), valid...)
		corrupted[0] = 0xFF
		_, err := FromBinary(corrupted)
		assert.ErrorIs(t, err, ErrSnapshotBadMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		corrupted := append([]byte(nil), valid...)
		binary.BigEndian.PutUint16(corrupted[4:6], 9)
		_, err := FromBinary(corrupted)
		assert.ErrorIs(t, err, ErrSnapshotBadVersion)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := FromBinary(valid[:len(valid)-8])
		assert.ErrorIs(t, err, ErrSnapshotTruncated)
	})

	t.Run("unreasonable counts", func(t *testing.T) {
		corrupted := append([]byte(nil), valid...)
		binary.BigEndian.PutUint32(corrupted[8:12], 1<<30)
		_, err := FromBinary(corrupted)
		assert.ErrorIs(t, err, ErrSnapshotBadCounts)
	})
}

func TestTopOfBook_Derived(t *testing.T) {
	tob := &TopOfBook{Symbol: "AAPL", BestBid: 9999, BestAsk: 10001}
	assert.Equal(t, orderbookv1.Price(10000), tob.MidPrice())
	assert.Equal(t, orderbookv1.Price(2), tob.Spread())

	oneSided := &TopOfBook{Symbol: "AAPL", BestBid: 9999, BestAsk: orderbookv1.InvalidPrice}
	assert.Equal(t, orderbookv1.InvalidPrice, oneSided.MidPrice())
	assert.Equal(t, orderbookv1.InvalidPrice, oneSided.Spread())
}
