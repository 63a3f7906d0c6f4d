package engine

import (
	"encoding/json"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/eventlog"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
)

// ReplayEntries feeds the input-typed records of a journal back through
// the engine in file order. Records that fail to decode are skipped, like
// malformed journal lines. The engine must carry the same symbol
// configuration as the one that produced the journal for the outputs to
// reproduce.
func (e *Engine) ReplayEntries(entries []eventlog.Entry) int {
	replayed := 0

	for _, entry := range entries {
		if !entry.Type.IsInput() {
			continue
		}

		switch entry.Type {
		case eventlog.EntryNewOrder:
			var request orderbookv1.NewOrderRequest
			if err := json.Unmarshal(entry.Data, &request); err != nil {
				e.logger.Warn("Skipping undecodable journal record",
					logger.Field{Key: "seq", Value: entry.Seq},
					logger.Field{Key: "type", Value: string(entry.Type)},
				)
				continue
			}
			e.HandleNewOrder(request)
		case eventlog.EntryCancel:
			var request orderbookv1.CancelRequest
			if err := json.Unmarshal(entry.Data, &request); err != nil {
				continue
			}
			e.HandleCancel(request)
		case eventlog.EntryReplace:
			var request orderbookv1.ReplaceRequest
			if err := json.Unmarshal(entry.Data, &request); err != nil {
				continue
			}
			e.HandleReplace(request)
		}

		replayed++
	}

	return replayed
}

// ReplayFile loads a journal from disk and replays its inputs.
func (e *Engine) ReplayFile(path string) (int, error) {
	entries, err := eventlog.Load(path)
	if err != nil {
		return 0, err
	}
	return e.ReplayEntries(entries), nil
}
