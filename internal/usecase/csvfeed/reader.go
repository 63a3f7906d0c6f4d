// Package csvfeed parses order streams from CSV files. Columns, in
// order: timestamp,symbol,side,order_type,price,quantity,order_id,
// trader_id. A header row is optional and detected by the literal
// "timestamp" in the first line. Prices are decimal strings multiplied
// by 100 to obtain ticks.
package csvfeed

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// Record represents one parsed CSV order row.
type Record struct {
	Request orderbookv1.NewOrderRequest
	Line    int
}

// Reader streams order requests from CSV input.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a reader over the input.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next order row. It returns io.EOF at end of input and
// a line-numbered error for a malformed row; the caller decides whether
// to skip or abort.
func (r *Reader) Next() (Record, error) {
	for {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return Record{}, err
			}
			return Record{}, io.EOF
		}
		r.line++

		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		// header row is optional
		if r.line == 1 && strings.Contains(line, "timestamp") {
			continue
		}

		request, err := parseLine(line)
		if err != nil {
			return Record{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		return Record{Request: request, Line: r.line}, nil
	}
}

func parseLine(line string) (orderbookv1.NewOrderRequest, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 8 {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("expected 8 columns, got %d", len(fields))
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad timestamp %q: %w", fields[0], err)
	}

	symbol := strings.TrimSpace(fields[1])
	if symbol == "" {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("empty symbol")
	}

	var side orderbookv1.Side
	switch fields[2] {
	case "BUY":
		side = orderbookv1.SideBuy
	case "SELL":
		side = orderbookv1.SideSell
	default:
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad side %q", fields[2])
	}

	var orderType orderbookv1.OrderType
	switch fields[3] {
	case "LIMIT":
		orderType = orderbookv1.OrderTypeLimit
	case "MARKET":
		orderType = orderbookv1.OrderTypeMarket
	default:
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad order type %q", fields[3])
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad price %q: %w", fields[4], err)
	}

	quantity, err := strconv.ParseUint(strings.TrimSpace(fields[5]), 10, 64)
	if err != nil {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad quantity %q: %w", fields[5], err)
	}

	orderID, err := strconv.ParseUint(strings.TrimSpace(fields[6]), 10, 64)
	if err != nil {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad order id %q: %w", fields[6], err)
	}

	traderID, err := strconv.ParseUint(strings.TrimSpace(fields[7]), 10, 64)
	if err != nil {
		return orderbookv1.NewOrderRequest{}, fmt.Errorf("bad trader id %q: %w", fields[7], err)
	}

	return orderbookv1.NewOrderRequest{
		OrderID:     orderID,
		TraderID:    traderID,
		Symbol:      symbol,
		Side:        side,
		OrderType:   orderType,
		Price:       orderbookv1.Price(math.Round(price * 100)),
		Quantity:    quantity,
		TimeInForce: orderbookv1.TIFDay,
		Timestamp:   timestamp,
	}, nil
}
