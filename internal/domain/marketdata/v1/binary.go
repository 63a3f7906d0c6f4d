package marketdatav1

import (
	"encoding/binary"
	"errors"
	"fmt"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// Binary depth snapshot wire format, big-endian throughout:
//
//	header (32 bytes): magic u32, version u16, symbol_len u8, reserved u8,
//	                   num_bids u32, num_asks u32, timestamp u64, sequence u64
//	symbol bytes (symbol_len)
//	num_bids then num_asks level records (price i64, quantity u64)
//	checksum slot (4 bytes, zero)
const (
	// SnapshotMagic is the header magic, ASCII 'LOB1'.
	SnapshotMagic uint32 = 0x4C4F4231
	// SnapshotVersion is the current wire format version.
	SnapshotVersion uint16 = 1

	headerSize   = 32
	levelSize    = 16
	checksumSize = 4

	// maxLevels bounds the per-side level count a decoder will accept.
	maxLevels = 1 << 20
)

var (
	// ErrSnapshotTooShort is returned when the buffer cannot hold a header.
	ErrSnapshotTooShort = errors.New("snapshot buffer too short")
	// ErrSnapshotBadMagic is returned on a magic mismatch.
	ErrSnapshotBadMagic = errors.New("snapshot magic mismatch")
	// ErrSnapshotBadVersion is returned on an unsupported version.
	ErrSnapshotBadVersion = errors.New("unsupported snapshot version")
	// ErrSnapshotTruncated is returned when the declared sizes exceed the buffer.
	ErrSnapshotTruncated = errors.New("snapshot buffer truncated")
	// ErrSnapshotBadCounts is returned on an unreasonable level count.
	ErrSnapshotBadCounts = errors.New("unreasonable snapshot level counts")
)

// ToBinary serializes the snapshot into the binary wire format.
func (s *DepthSnapshot) ToBinary() []byte {
	total := headerSize + len(s.Symbol) + (len(s.Bids)+len(s.Asks))*levelSize + checksumSize
	buf := make([]byte, total)

	binary.BigEndian.PutUint32(buf[0:4], SnapshotMagic)
	binary.BigEndian.PutUint16(buf[4:6], SnapshotVersion)
	buf[6] = uint8(len(s.Symbol))
	buf[7] = 0
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(s.Bids)))
	binary.BigEndian.PutUint32(buf[12:16], uint32(len(s.Asks)))
	binary.BigEndian.PutUint64(buf[16:24], uint64(s.Timestamp))
	binary.BigEndian.PutUint64(buf[24:32], s.SequenceNumber)

	offset := headerSize
	copy(buf[offset:], s.Symbol)
	offset += len(s.Symbol)

	for _, level := range s.Bids {
		binary.BigEndian.PutUint64(buf[offset:], uint64(level.Price))
		binary.BigEndian.PutUint64(buf[offset+8:], level.Quantity)
		offset += levelSize
	}
	for _, level := range s.Asks {
		binary.BigEndian.PutUint64(buf[offset:], uint64(level.Price))
		binary.BigEndian.PutUint64(buf[offset+8:], level.Quantity)
		offset += levelSize
	}

	// Checksum slot stays zero.
	return buf
}

// FromBinary deserializes a snapshot, validating magic, version and sizes
// before reading any field. OrderCount is not carried on the wire and is
// reset to zero on every level.
func FromBinary(data []byte) (*DepthSnapshot, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrSnapshotTooShort, len(data))
	}

	if magic := binary.BigEndian.Uint32(data[0:4]); magic != SnapshotMagic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrSnapshotBadMagic, magic)
	}
	if version := binary.BigEndian.Uint16(data[4:6]); version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotBadVersion, version)
	}

	symbolLen := int(data[6])
	numBids := binary.BigEndian.Uint32(data[8:12])
	numAsks := binary.BigEndian.Uint32(data[12:16])

	if numBids > maxLevels || numAsks > maxLevels {
		return nil, fmt.Errorf("%w: bids=%d asks=%d", ErrSnapshotBadCounts, numBids, numAsks)
	}

	total := headerSize + symbolLen + (int(numBids)+int(numAsks))*levelSize + checksumSize
	if len(data) < total {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrSnapshotTruncated, total, len(data))
	}

	snapshot := &DepthSnapshot{
		Timestamp:      orderbookv1.Timestamp(binary.BigEndian.Uint64(data[16:24])),
		SequenceNumber: binary.BigEndian.Uint64(data[24:32]),
	}

	offset := headerSize
	snapshot.Symbol = string(data[offset : offset+symbolLen])
	offset += symbolLen

	readLevel := func() PriceLevel {
		level := PriceLevel{
			Price:    orderbookv1.Price(binary.BigEndian.Uint64(data[offset:])),
			Quantity: binary.BigEndian.Uint64(data[offset+8:]),
		}
		offset += levelSize
		return level
	}

	for i := uint32(0); i < numBids; i++ {
		snapshot.Bids = append(snapshot.Bids, readLevel())
	}
	for i := uint32(0); i < numAsks; i++ {
		snapshot.Asks = append(snapshot.Asks, readLevel())
	}

	return snapshot, nil
}
