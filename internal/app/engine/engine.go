// Package engine holds the multi-symbol matching engine: it validates
// requests, routes them to per-symbol books, stamps sequence numbers,
// fans events out to listeners and drives the event log and telemetry.
// The engine is strictly single-threaded; every handle call runs the
// full pipeline to completion on the calling goroutine.
package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	enginev1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/engine/v1"
	marketdatav1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/marketdata/v1"
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/eventlog"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/orderbook"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/tape"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/telemetry"
	"github.com/Safalguptaofficial/production-lob-matching-engine/pkg/logger"
)

// Engine routes requests to per-symbol order books and emits a totally
// ordered event stream.
type Engine struct {
	logger *logger.Logger
	runID  string

	symbolConfigs map[string]enginev1.SymbolConfig
	orderBooks    map[string]*orderbook.OrderBook
	tradeTapes    map[string]*tape.TradeTape

	listeners []enginev1.Listener

	eventLog  *eventlog.Log
	telemetry *telemetry.Telemetry

	sequenceNumber uint64

	deterministic bool
	logicalClock  int64

	options *Options
}

// NewEngine creates an engine with default options.
func NewEngine(log *logger.Logger) *Engine {
	return NewEngineWithOptions(log, DefaultEngineOptions())
}

// NewEngineWithOptions creates an engine with custom options.
func NewEngineWithOptions(log *logger.Logger, options *Options) *Engine {
	e := &Engine{
		logger:        log,
		runID:         ulid.Make().String(),
		symbolConfigs: make(map[string]enginev1.SymbolConfig),
		orderBooks:    make(map[string]*orderbook.OrderBook),
		tradeTapes:    make(map[string]*tape.TradeTape),
		telemetry:     telemetry.New(),
		options:       options,
	}

	e.eventLog = eventlog.NewLog(log, func() int64 { return e.now() })

	path := options.EventLogPath
	if path == "" {
		path = filepath.Join("logs", fmt.Sprintf("events-%s.log", e.runID))
	}
	e.eventLog.SetPath(path)

	return e
}

// RunID returns the engine instance id.
func (e *Engine) RunID() string {
	return e.runID
}

// AddSymbol registers a symbol. It returns false for an invalid config or
// a duplicate symbol.
func (e *Engine) AddSymbol(config enginev1.SymbolConfig) bool {
	if !config.IsValid() {
		return false
	}
	if _, exists := e.symbolConfigs[config.Symbol]; exists {
		return false
	}

	e.symbolConfigs[config.Symbol] = config
	e.orderBooks[config.Symbol] = orderbook.NewOrderBook(config.Symbol, config.STPPolicy)
	e.tradeTapes[config.Symbol] = tape.NewTradeTape(e.options.TapeCapacity)

	e.logger.Info("Symbol registered",
		logger.Field{Key: "symbol", Value: config.Symbol},
		logger.Field{Key: "stp_policy", Value: config.STPPolicy.String()},
	)
	return true
}

// HasSymbol checks if the symbol is registered.
func (e *Engine) HasSymbol(symbol string) bool {
	_, ok := e.symbolConfigs[symbol]
	return ok
}

// HandleNewOrder validates and matches a new order, returning every event
// it produced in emission order.
func (e *Engine) HandleNewOrder(request orderbookv1.NewOrderRequest) orderbookv1.OrderResponse {
	start := time.Now()

	e.telemetry.RecordOrderProcessed()
	e.eventLog.Append(eventlog.EntryNewOrder, request)

	response := orderbookv1.OrderResponse{OrderID: request.OrderID}

	if code := e.validateNewOrder(&request); code != orderbookv1.ResultSuccess {
		e.reject(&response, code, request.OrderID, request.Symbol)
		return response
	}

	ts := request.Timestamp
	if ts == 0 {
		ts = e.now()
	}

	book := e.orderBooks[request.Symbol]
	topBefore := book.TopOfBook(ts)

	trades := book.AddOrder(request.ToOrder(), ts)

	e.telemetry.RecordOrderAccepted()

	acceptEvent := orderbookv1.OrderAcceptedEvent{
		OrderID:        request.OrderID,
		Symbol:         request.Symbol,
		Side:           request.Side,
		Price:          request.Price,
		Quantity:       request.Quantity,
		Timestamp:      ts,
		SequenceNumber: e.nextSequence(),
	}
	response.Accepts = append(response.Accepts, acceptEvent)
	e.notifyOrderAccepted(acceptEvent)
	e.eventLog.Append(eventlog.EntryOrderAccepted, acceptEvent)

	e.emitTrades(&response, trades)
	e.telemetry.UpdateSymbolStats(request.Symbol, book.Stats())
	e.publishBookUpdates(book, topBefore, ts)

	e.telemetry.RecordLatency(uint64(time.Since(start).Nanoseconds()))

	response.Result = orderbookv1.ResultSuccess
	return response
}

// HandleCancel removes a resting order. An unknown id yields
// REJECTED_ORDER_NOT_FOUND with no event.
func (e *Engine) HandleCancel(request orderbookv1.CancelRequest) orderbookv1.OrderResponse {
	e.telemetry.RecordOrderProcessed()
	e.eventLog.Append(eventlog.EntryCancel, request)

	response := orderbookv1.OrderResponse{OrderID: request.OrderID}

	if !e.HasSymbol(request.Symbol) {
		e.reject(&response, orderbookv1.ResultRejectedInvalidSymbol, request.OrderID, request.Symbol)
		return response
	}

	ts := request.Timestamp
	if ts == 0 {
		ts = e.now()
	}

	book := e.orderBooks[request.Symbol]
	topBefore := book.TopOfBook(ts)

	resting, _ := book.FindOrder(request.OrderID)
	if !book.CancelOrder(request.OrderID) {
		response.Result = orderbookv1.ResultRejectedOrderNotFound
		response.Message = "Order not found"
		return response
	}

	e.telemetry.RecordOrderCancelled()

	cancelEvent := orderbookv1.OrderCancelledEvent{
		OrderID:           request.OrderID,
		Symbol:            request.Symbol,
		RemainingQuantity: resting.RemainingQuantity,
		Timestamp:         ts,
		SequenceNumber:    e.nextSequence(),
	}
	response.Cancels = append(response.Cancels, cancelEvent)
	e.notifyOrderCancelled(cancelEvent)
	e.eventLog.Append(eventlog.EntryOrderCancelled, cancelEvent)

	e.telemetry.UpdateSymbolStats(request.Symbol, book.Stats())
	e.publishBookUpdates(book, topBefore, ts)

	response.Result = orderbookv1.ResultSuccess
	return response
}

// HandleReplace cancels and re-adds an order with new price and quantity.
// The replaced event carries the original id on both sides; an unknown id
// still produces the event but no trades and no book change.
func (e *Engine) HandleReplace(request orderbookv1.ReplaceRequest) orderbookv1.OrderResponse {
	e.telemetry.RecordOrderProcessed()
	e.eventLog.Append(eventlog.EntryReplace, request)

	response := orderbookv1.OrderResponse{OrderID: request.OrderID}

	if code := e.validateReplace(&request); code != orderbookv1.ResultSuccess {
		e.telemetry.RecordOrderRejected()
		response.Result = code
		response.Message = code.String()
		return response
	}

	ts := request.Timestamp
	if ts == 0 {
		ts = e.now()
	}

	book := e.orderBooks[request.Symbol]
	topBefore := book.TopOfBook(ts)

	trades := book.ReplaceOrder(request.OrderID, request.NewPrice, request.NewQuantity, ts)

	replaceEvent := orderbookv1.OrderReplacedEvent{
		OldOrderID:     request.OrderID,
		NewOrderID:     request.OrderID,
		Symbol:         request.Symbol,
		NewPrice:       request.NewPrice,
		NewQuantity:    request.NewQuantity,
		Timestamp:      ts,
		SequenceNumber: e.nextSequence(),
	}
	response.Replaces = append(response.Replaces, replaceEvent)
	e.notifyOrderReplaced(replaceEvent)
	e.eventLog.Append(eventlog.EntryOrderReplaced, replaceEvent)

	e.emitTrades(&response, trades)
	e.telemetry.UpdateSymbolStats(request.Symbol, book.Stats())
	e.publishBookUpdates(book, topBefore, ts)

	response.Result = orderbookv1.ResultSuccess
	return response
}

// TopOfBook returns the symbol's best bid and ask. A zero timestamp is
// replaced with the engine clock.
func (e *Engine) TopOfBook(symbol string, timestamp orderbookv1.Timestamp) marketdatav1.TopOfBook {
	book, ok := e.orderBooks[symbol]
	if !ok {
		return marketdatav1.TopOfBook{
			BestBid: orderbookv1.InvalidPrice,
			BestAsk: orderbookv1.InvalidPrice,
		}
	}
	if timestamp == 0 {
		timestamp = e.now()
	}
	return book.TopOfBook(timestamp)
}

// DepthSnapshot returns up to depthLevels aggregated levels per side.
func (e *Engine) DepthSnapshot(symbol string, depthLevels int, timestamp orderbookv1.Timestamp) marketdatav1.DepthSnapshot {
	book, ok := e.orderBooks[symbol]
	if !ok {
		return marketdatav1.DepthSnapshot{}
	}
	if timestamp == 0 {
		timestamp = e.now()
	}
	return book.DepthSnapshot(depthLevels, timestamp)
}

// RecentTrades returns the most recent trades from the symbol's tape.
func (e *Engine) RecentTrades(symbol string, maxCount int) []orderbookv1.TradeEvent {
	t, ok := e.tradeTapes[symbol]
	if !ok {
		return nil
	}
	return t.RecentTrades(maxCount)
}

// TradeTapeCSV exports the symbol's trade tape as CSV.
func (e *Engine) TradeTapeCSV(symbol string) string {
	t, ok := e.tradeTapes[symbol]
	if !ok {
		return ""
	}
	return t.ToCSV()
}

// AddListener registers a listener for event fan-out.
func (e *Engine) AddListener(listener enginev1.Listener) {
	e.listeners = append(e.listeners, listener)
}

// RemoveListener unregisters a previously added listener.
func (e *Engine) RemoveListener(listener enginev1.Listener) {
	for i, l := range e.listeners {
		if l == listener {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// SetDeterministic enables the event log and switches timestamps to a
// logical counter so a replay reproduces every output field.
func (e *Engine) SetDeterministic(enabled bool) {
	e.deterministic = enabled
	e.eventLog.SetDeterministic(enabled)
}

// IsDeterministic checks if deterministic mode is enabled.
func (e *Engine) IsDeterministic() bool {
	return e.deterministic
}

// EventLog exposes the journal for flushing and loading.
func (e *Engine) EventLog() *eventlog.Log {
	return e.eventLog
}

// Telemetry exposes the metrics accumulator.
func (e *Engine) Telemetry() *telemetry.Telemetry {
	return e.telemetry
}

// Close flushes and closes the event log.
func (e *Engine) Close() error {
	return e.eventLog.Close()
}

func (e *Engine) validateNewOrder(request *orderbookv1.NewOrderRequest) orderbookv1.ResultCode {
	if !e.HasSymbol(request.Symbol) {
		return orderbookv1.ResultRejectedInvalidSymbol
	}
	if request.OrderType == orderbookv1.OrderTypeLimit && request.Price <= 0 {
		return orderbookv1.ResultRejectedInvalidPrice
	}
	if request.Quantity == 0 {
		return orderbookv1.ResultRejectedInvalidQuantity
	}
	return orderbookv1.ResultSuccess
}

func (e *Engine) validateReplace(request *orderbookv1.ReplaceRequest) orderbookv1.ResultCode {
	if !e.HasSymbol(request.Symbol) {
		return orderbookv1.ResultRejectedInvalidSymbol
	}
	if request.NewPrice <= 0 {
		return orderbookv1.ResultRejectedInvalidPrice
	}
	if request.NewQuantity == 0 {
		return orderbookv1.ResultRejectedInvalidQuantity
	}
	return orderbookv1.ResultSuccess
}

// reject records, notifies and journals a rejection.
func (e *Engine) reject(response *orderbookv1.OrderResponse, code orderbookv1.ResultCode, orderID orderbookv1.OrderID, symbol string) {
	e.telemetry.RecordOrderRejected()

	response.Result = code
	response.Message = code.String()

	rejectEvent := orderbookv1.OrderRejectedEvent{
		OrderID:        orderID,
		Symbol:         symbol,
		Reason:         code,
		Message:        response.Message,
		Timestamp:      e.now(),
		SequenceNumber: e.nextSequence(),
	}
	response.Rejects = append(response.Rejects, rejectEvent)
	e.notifyOrderRejected(rejectEvent)
	e.eventLog.Append(eventlog.EntryOrderRejected, rejectEvent)
}

// emitTrades stamps, records, journals and fans out each trade in order.
func (e *Engine) emitTrades(response *orderbookv1.OrderResponse, trades []orderbookv1.TradeEvent) {
	for _, trade := range trades {
		trade.SequenceNumber = e.nextSequence()
		response.Trades = append(response.Trades, trade)

		e.telemetry.RecordTrade(trade.Symbol, trade.Quantity)
		e.tradeTapes[trade.Symbol].AddTrade(trade)

		e.notifyTrade(trade)
		e.eventLog.Append(eventlog.EntryTrade, trade)
	}
}

// publishBookUpdates tells listeners about a changed top of book. Book
// updates are never journaled and do not advance the sequence counter;
// they carry the sequence number of the event that caused them.
func (e *Engine) publishBookUpdates(book *orderbook.OrderBook, before marketdatav1.TopOfBook, ts orderbookv1.Timestamp) {
	if len(e.listeners) == 0 {
		return
	}

	after := book.TopOfBook(ts)

	if before.BestBid != after.BestBid || before.BidSize != after.BidSize {
		e.notifyBookUpdate(topUpdateEvent(book.Symbol(), orderbookv1.SideBuy, before.BestBid, after.BestBid, after.BidSize, ts, e.sequenceNumber))
	}
	if before.BestAsk != after.BestAsk || before.AskSize != after.AskSize {
		e.notifyBookUpdate(topUpdateEvent(book.Symbol(), orderbookv1.SideSell, before.BestAsk, after.BestAsk, after.AskSize, ts, e.sequenceNumber))
	}
}

func topUpdateEvent(symbol string, side orderbookv1.Side, oldPrice, newPrice orderbookv1.Price, newQuantity orderbookv1.Quantity, ts orderbookv1.Timestamp, seq uint64) orderbookv1.BookUpdateEvent {
	event := orderbookv1.BookUpdateEvent{
		Symbol:         symbol,
		Side:           side,
		Price:          newPrice,
		Quantity:       newQuantity,
		Timestamp:      ts,
		SequenceNumber: seq,
	}
	if newPrice == orderbookv1.InvalidPrice {
		// side emptied: report the removal of the old level
		event.Price = oldPrice
		event.Quantity = 0
	}
	return event
}

func (e *Engine) notifyOrderAccepted(event orderbookv1.OrderAcceptedEvent) {
	for _, listener := range e.listeners {
		listener.OnOrderAccepted(event)
	}
}

func (e *Engine) notifyOrderRejected(event orderbookv1.OrderRejectedEvent) {
	for _, listener := range e.listeners {
		listener.OnOrderRejected(event)
	}
}

func (e *Engine) notifyOrderCancelled(event orderbookv1.OrderCancelledEvent) {
	for _, listener := range e.listeners {
		listener.OnOrderCancelled(event)
	}
}

func (e *Engine) notifyOrderReplaced(event orderbookv1.OrderReplacedEvent) {
	for _, listener := range e.listeners {
		listener.OnOrderReplaced(event)
	}
}

func (e *Engine) notifyTrade(event orderbookv1.TradeEvent) {
	for _, listener := range e.listeners {
		listener.OnTrade(event)
	}
}

func (e *Engine) notifyBookUpdate(event orderbookv1.BookUpdateEvent) {
	for _, listener := range e.listeners {
		listener.OnBookUpdate(event)
	}
}

// now returns the engine timestamp: a logical counter in deterministic
// mode, the wall clock otherwise.
func (e *Engine) now() int64 {
	if e.deterministic {
		e.logicalClock++
		return e.logicalClock
	}
	return time.Now().UnixNano()
}

func (e *Engine) nextSequence() uint64 {
	e.sequenceNumber++
	return e.sequenceNumber
}
