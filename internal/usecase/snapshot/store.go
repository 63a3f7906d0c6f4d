// Package snapshot persists binary depth snapshots to Redis so external
// consumers can bootstrap a book view without replaying the feed.
package snapshot

import (
	"context"
	"fmt"

	marketdatav1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/marketdata/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/errors"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/redis"
)

// Store writes depth snapshots to Redis in the binary wire format, one
// key per symbol.
type Store struct {
	keyPrefix   string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewStore creates a store keyed under the given prefix.
func NewStore(redisclient redis.Client, keyPrefix string, log *logger.Logger) *Store {
	return &Store{
		keyPrefix:   keyPrefix,
		redisclient: redisclient,
		logger:      log,
	}
}

// Store encodes the snapshot and writes it under the symbol's key.
func (s *Store) Store(ctx context.Context, snapshot *marketdatav1.DepthSnapshot) error {
	buf := snapshot.ToBinary()

	key := s.key(snapshot.Symbol)
	if err := s.redisclient.Set(ctx, key, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: snapshot.Symbol,
		})
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	s.logger.DebugContext(ctx, fmt.Sprintf("Snapshot stored for symbol %s", snapshot.Symbol),
		logger.Field{Key: "key", Value: key},
		logger.Field{Key: "bytes", Value: len(buf)},
	)
	return nil
}

// Load reads and decodes the symbol's snapshot. A missing key returns
// nil without error.
func (s *Store) Load(ctx context.Context, symbol string) (*marketdatav1.DepthSnapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key(symbol))
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: symbol,
		})
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, fmt.Sprintf("No snapshot found for symbol %s", symbol))
		return nil, nil
	}

	snapshot, err := marketdatav1.FromBinary([]byte(data))
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: symbol,
		})
		return nil, errors.NewTracer(string(errors.SnapshotDecodeError)).Wrap(err)
	}

	return snapshot, nil
}

func (s *Store) key(symbol string) string {
	return s.keyPrefix + symbol
}
