package publisher

import (
	"context"
	"encoding/json"
	"strconv"

	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/config"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/errors"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
	"github.com/segmentio/kafka-go"
)

var _ enginev1.Listener = (*KafkaTrades)(nil)

// KafkaTrades publishes trade events to a Kafka topic, keyed by symbol so
// per-symbol ordering survives partitioning. It plugs into the engine as
// a listener.
type KafkaTrades struct {
	enginev1.NopListener

	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewKafkaTrades creates a publisher writing to the configured topic.
func NewKafkaTrades(cfg config.KafkaConfig, log *logger.Logger) *KafkaTrades {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &KafkaTrades{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTradeEvent publishes one trade event to the topic.
func (p *KafkaTrades) PublishTradeEvent(ctx context.Context, trade orderbookv1.TradeEvent) error {
	value, err := json.Marshal(trade)
	if err != nil {
		return errors.NewTracer(string(errors.TradePublishError)).Wrap(err)
	}

	msg := kafka.Message{
		Key:   []byte(trade.Symbol),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "symbol", Value: trade.Symbol},
			logger.Field{Key: "trade_id", Value: strconv.FormatUint(trade.TradeID, 10)},
		)
		return errors.NewTracer(string(errors.TradePublishError)).Wrap(err)
	}
	return nil
}

// OnTrade implements the engine Listener.
func (p *KafkaTrades) OnTrade(event orderbookv1.TradeEvent) {
	_ = p.PublishTradeEvent(context.Background(), event)
}

// Close shuts the underlying writer down.
func (p *KafkaTrades) Close() error {
	return p.kafkaWriter.Close()
}
