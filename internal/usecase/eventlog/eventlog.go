// Package eventlog implements the append-only journal behind
// deterministic mode: every input request and output event is written as
// a self-describing JSON line, and a journal can be loaded back for
// replay.
package eventlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/errors"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
)

// EntryType identifies a journal record. Input types are replayed;
// output types are compared against a replay's outputs.
type EntryType string

const (
	// EntryNewOrder journals an incoming NewOrderRequest.
	EntryNewOrder EntryType = "NEW_ORDER"
	// EntryCancel journals an incoming CancelRequest.
	EntryCancel EntryType = "CANCEL"
	// EntryReplace journals an incoming ReplaceRequest.
	EntryReplace EntryType = "REPLACE"
	// EntryOrderAccepted journals an OrderAcceptedEvent.
	EntryOrderAccepted EntryType = "ORDER_ACCEPTED"
	// EntryOrderRejected journals an OrderRejectedEvent.
	EntryOrderRejected EntryType = "ORDER_REJECTED"
	// EntryOrderCancelled journals an OrderCancelledEvent.
	EntryOrderCancelled EntryType = "ORDER_CANCELLED"
	// EntryOrderReplaced journals an OrderReplacedEvent.
	EntryOrderReplaced EntryType = "ORDER_REPLACED"
	// EntryTrade journals a TradeEvent.
	EntryTrade EntryType = "TRADE"
)

// IsInput checks if the entry type is a replayable input request.
func (t EntryType) IsInput() bool {
	return t == EntryNewOrder || t == EntryCancel || t == EntryReplace
}

// knownTypes guards Load against foreign record types.
var knownTypes = map[EntryType]bool{
	EntryNewOrder:       true,
	EntryCancel:         true,
	EntryReplace:        true,
	EntryOrderAccepted:  true,
	EntryOrderRejected:  true,
	EntryOrderCancelled: true,
	EntryOrderReplaced:  true,
	EntryTrade:          true,
}

// Entry represents one journal record.
type Entry struct {
	Type EntryType       `json:"type"`
	Seq  uint64          `json:"seq"`
	Ts   int64           `json:"ts"`
	Data json.RawMessage `json:"data"`
}

// Log is the buffered append-only journal. It is inert until
// deterministic mode is enabled and a path is set.
type Log struct {
	logger *logger.Logger

	deterministic bool
	path          string
	file          *os.File
	writer        *bufio.Writer
	seq           uint64
	now           func() int64
}

// NewLog creates an inert journal. now supplies the record timestamps.
func NewLog(log *logger.Logger, now func() int64) *Log {
	return &Log{
		logger: log,
		now:    now,
	}
}

// SetDeterministic enables or disables journaling. Enabling opens the
// file if a path has been set.
func (l *Log) SetDeterministic(enabled bool) {
	l.deterministic = enabled
	if enabled && l.path != "" {
		l.ensureOpen()
	}
}

// IsDeterministic checks if journaling is enabled.
func (l *Log) IsDeterministic() bool {
	return l.deterministic
}

// SetPath sets the journal file path, opening it when journaling is
// already enabled.
func (l *Log) SetPath(path string) {
	l.path = path
	if l.deterministic {
		l.ensureOpen()
	}
}

// Append journals one record of the given type. Failures are logged and
// swallowed: journaling never disturbs the matching path.
func (l *Log) Append(entryType EntryType, data any) {
	if !l.deterministic {
		return
	}
	l.ensureOpen()
	if l.writer == nil {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		l.logger.Error(errors.NewTracer("event_log_marshal_error").Wrap(err),
			logger.Field{Key: "type", Value: string(entryType)},
		)
		return
	}

	l.seq++
	entry := Entry{
		Type: entryType,
		Seq:  l.seq,
		Ts:   l.now(),
		Data: payload,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error(errors.NewTracer("event_log_marshal_error").Wrap(err),
			logger.Field{Key: "type", Value: string(entryType)},
		)
		return
	}

	if _, err := l.writer.Write(append(line, '\n')); err != nil {
		l.logger.Error(errors.NewTracer("event_log_write_error").Wrap(err),
			logger.Field{Key: "path", Value: l.path},
		)
	}
}

// Flush drains the write buffer to disk.
func (l *Log) Flush() error {
	if l.writer == nil {
		return nil
	}
	if err := l.writer.Flush(); err != nil {
		return errors.NewTracer("event_log_flush_error").Wrap(err)
	}
	return nil
}

// Close flushes and closes the journal file.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	if err := l.Flush(); err != nil {
		return err
	}
	err := l.file.Close()
	l.file = nil
	l.writer = nil
	if err != nil {
		return errors.NewTracer("event_log_close_error").Wrap(err)
	}
	return nil
}

func (l *Log) ensureOpen() {
	if l.file != nil || l.path == "" {
		return
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			l.logger.Error(errors.NewTracer("event_log_mkdir_error").Wrap(err),
				logger.Field{Key: "path", Value: l.path},
			)
			return
		}
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l.logger.Error(errors.NewTracer("event_log_open_error").Wrap(err),
			logger.Field{Key: "path", Value: l.path},
		)
		return
	}

	l.file = file
	l.writer = bufio.NewWriter(file)
}

// Load reads a journal back in file order, skipping malformed lines and
// records of unknown type.
func Load(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewTracer("event_log_load_error").Wrap(err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if !knownTypes[entry.Type] {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return entries, errors.NewTracer("event_log_scan_error").Wrap(err)
	}

	return entries, nil
}
