// Command replay feeds a CSV order stream through the matching engine.
// It supports deterministic journaling, trade printing, depth rendering,
// dual-engine validation and telemetry output.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/app/engine"
	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/csvfeed"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/publisher"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/snapshot"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/validator"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/config"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/redis"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		input           = flag.String("input", "", "CSV order file (required)")
		deterministic   = flag.Bool("deterministic", false, "enable the event log")
		printTrades     = flag.Bool("print-trades", false, "stream trade events to stdout")
		printDepth      = flag.Int("print-depth", 0, "render top-N depth snapshots on exit")
		validate        = flag.Bool("validate", false, "run the reference book in parallel and diff outputs")
		binarySnapshots = flag.Bool("binary-snapshots", false, "prefer binary over JSON for snapshots")
		stats           = flag.Bool("stats", false, "print telemetry on exit")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: replay --input FILE [--deterministic] [--print-trades] [--print-depth N] [--validate] [--binary-snapshots] [--stats]")
		return 1
	}

	var cfg config.ReplayConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	file, err := os.Open(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", *input, err)
		return 1
	}
	defer file.Close()

	options := engine.DefaultEngineOptions()
	options.TapeCapacity = cfg.TapeCapacity
	options.EventLogPath = filepath.Join(cfg.EventLogDir, "events.log")

	eng := engine.NewEngineWithOptions(log, options)
	defer eng.Close()

	if *deterministic {
		eng.SetDeterministic(true)
	}

	if *printTrades {
		// trades leave the matching thread over the SPSC ring and are
		// printed by the consumer goroutine
		marketData := publisher.NewMarketData(cfg.RingCapacity, log)
		marketData.Start(printTrade)
		defer marketData.Stop()
		eng.AddListener(marketData)
	}

	if cfg.KafkaConfig.Enabled {
		kafkaTrades := publisher.NewKafkaTrades(cfg.KafkaConfig, log)
		defer kafkaTrades.Close()
		eng.AddListener(kafkaTrades)
	}

	validators := make(map[string]*validator.Validator)
	mismatches := 0

	reader := csvfeed.NewReader(file)
	ordersProcessed := 0
	tradesExecuted := 0
	parseErrors := 0
	symbols := make([]string, 0, 8)

	for {
		record, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("Skipping bad CSV row", logger.Field{Key: "error", Value: err.Error()})
			parseErrors++
			continue
		}

		request := record.Request
		if !eng.HasSymbol(request.Symbol) {
			eng.AddSymbol(enginev1.DefaultSymbolConfig(request.Symbol))
			symbols = append(symbols, request.Symbol)
			if *validate {
				validators[request.Symbol] = validator.New(request.Symbol, orderbookv1.STPCancelIncoming)
			}
		}

		response := eng.HandleNewOrder(request)
		ordersProcessed++
		tradesExecuted += len(response.Trades)

		if *validate {
			ts := request.Timestamp
			result := validators[request.Symbol].AddOrder(request.ToOrder(), ts)
			if !result.Passed {
				mismatches++
				log.Warn("Validation mismatch",
					logger.Field{Key: "order_id", Value: request.OrderID},
					logger.Field{Key: "detail", Value: result.Summary()},
				)
			}
		}
	}

	var snapshotStore *snapshot.Store
	if cfg.SnapshotConfig.Enabled {
		client := redis.NewClient(log, redis.DefaultConfig())
		if err := client.Connect(context.Background()); err != nil {
			log.Error(err)
		} else {
			defer client.Disconnect(context.Background())
			snapshotStore = snapshot.NewStore(client, cfg.SnapshotConfig.KeyPrefix, log)
		}
	}

	if *printDepth > 0 {
		for _, symbol := range symbols {
			depth := eng.DepthSnapshot(symbol, *printDepth, 0)
			if *binarySnapshots {
				fmt.Printf("DEPTH [%s] %s\n", symbol, hex.EncodeToString(depth.ToBinary()))
			} else {
				rendered, err := depth.ToJSON()
				if err != nil {
					log.Error(err)
					continue
				}
				fmt.Printf("DEPTH [%s] %s\n", symbol, rendered)
			}
			if snapshotStore != nil {
				if err := snapshotStore.Store(context.Background(), &depth); err != nil {
					log.Error(err)
				}
			}
		}
	}

	if *validate {
		for symbol, v := range validators {
			result := v.CompareStates()
			if !result.Passed {
				mismatches++
				log.Warn("Final state mismatch",
					logger.Field{Key: "symbol", Value: symbol},
					logger.Field{Key: "detail", Value: result.Summary()},
				)
			}
		}
		fmt.Printf("Validation mismatches: %d\n", mismatches)
	}

	if *stats {
		rendered, err := eng.Telemetry().ToJSON()
		if err != nil {
			log.Error(err)
		} else {
			fmt.Println(string(rendered))
		}
	}

	log.Info("Replay complete",
		logger.Field{Key: "orders", Value: ordersProcessed},
		logger.Field{Key: "trades", Value: tradesExecuted},
		logger.Field{Key: "parse_errors", Value: parseErrors},
	)

	return 0
}

// printTrade streams one trade to stdout on the publisher's consumer
// goroutine.
func printTrade(event orderbookv1.TradeEvent) {
	fmt.Printf("TRADE [%s] %d @ %d (aggressor %s, orders %d/%d)\n",
		event.Symbol, event.Quantity, event.Price, event.AggressorSide,
		event.AggressiveOrderID, event.PassiveOrderID)
}
