package csvfeed

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func readAll(t *testing.T, input string) ([]Record, []error) {
	t.Helper()

	reader := NewReader(strings.NewReader(input))
	var records []Record
	var errs []error
	for {
		record, err := reader.Next()
		if err == io.EOF {
			return records, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, record)
	}
}

func TestReader_WithHeader(t *testing.T) {
	input := "timestamp,symbol,side,order_type,price,quantity,order_id,trader_id\n" +
		"1638360000000,AAPL,BUY,LIMIT,150.25,100,1,1001\n"

	records, errs := readAll(t, input)
	require.Empty(t, errs)
	require.Len(t, records, 1)

	request := records[0].Request
	assert.Equal(t, orderbookv1.OrderID(1), request.OrderID)
	assert.Equal(t, orderbookv1.TraderID(1001), request.TraderID)
	assert.Equal(t, "AAPL", request.Symbol)
	assert.Equal(t, orderbookv1.SideBuy, request.Side)
	assert.Equal(t, orderbookv1.OrderTypeLimit, request.OrderType)
	assert.Equal(t, orderbookv1.Price(15025), request.Price)
	assert.Equal(t, orderbookv1.Quantity(100), request.Quantity)
	assert.Equal(t, orderbookv1.TIFDay, request.TimeInForce)
	assert.Equal(t, orderbookv1.Timestamp(1638360000000), request.Timestamp)
}

func TestReader_WithoutHeader(t *testing.T) {
	input := "1638360000000,AAPL,SELL,MARKET,0,50,2,1002\n"

	records, errs := readAll(t, input)
	require.Empty(t, errs)
	require.Len(t, records, 1)

	request := records[0].Request
	assert.Equal(t, orderbookv1.SideSell, request.Side)
	assert.Equal(t, orderbookv1.OrderTypeMarket, request.OrderType)
}

func TestReader_BadRowsReportLineNumbers(t *testing.T) {
	input := "timestamp,symbol,side,order_type,price,quantity,order_id,trader_id\n" +
		"1,AAPL,BUY,LIMIT,100.00,100,1,1001\n" +
		"2,AAPL,buy,LIMIT,100.00,100,2,1001\n" + // side is case-sensitive
		"3,AAPL,BUY,STOP,100.00,100,3,1001\n" +
		"not,enough,columns\n" +
		"5,AAPL,SELL,LIMIT,101.00,100,4,1002\n"

	records, errs := readAll(t, input)
	require.Len(t, records, 2)
	require.Len(t, errs, 3)

	assert.Contains(t, errs[0].Error(), "line 3")
	assert.Contains(t, errs[1].Error(), "line 4")
	assert.Contains(t, errs[2].Error(), "line 5")
}

func TestReader_SkipsBlankLines(t *testing.T) {
	input := "\n1,AAPL,BUY,LIMIT,100.00,100,1,1001\n\n"

	records, errs := readAll(t, input)
	require.Empty(t, errs)
	assert.Len(t, records, 1)
}

func TestReader_PriceScaling(t *testing.T) {
	cases := []struct {
		raw      string
		expected orderbookv1.Price
	}{
		{"150.25", 15025},
		{"0.01", 1},
		{"100", 10000},
		{"99.999", 10000}, // rounds to the nearest tick
	}

	for _, tc := range cases {
		input := "1,AAPL,BUY,LIMIT," + tc.raw + ",100,1,1001\n"
		records, errs := readAll(t, input)
		require.Empty(t, errs, tc.raw)
		require.Len(t, records, 1, tc.raw)
		assert.Equal(t, tc.expected, records[0].Request.Price, tc.raw)
	}
}

func TestReader_Empty(t *testing.T) {
	records, errs := readAll(t, "")
	assert.Empty(t, records)
	assert.Empty(t, errs)
}
