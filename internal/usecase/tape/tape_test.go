package tape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func makeTrade(id orderbookv1.TradeID) orderbookv1.TradeEvent {
	return orderbookv1.TradeEvent{
		TradeID:           id,
		Symbol:            "TEST",
		Price:             10000,
		Quantity:          100,
		AggressorSide:     orderbookv1.SideBuy,
		AggressiveOrderID: 2,
		PassiveOrderID:    1,
		AggressiveTrader:  101,
		PassiveTrader:     100,
		Timestamp:         orderbookv1.Timestamp(id),
	}
}

func TestTradeTape_RecentTrades(t *testing.T) {
	tape := NewTradeTape(100)

	for i := 1; i <= 5; i++ {
		tape.AddTrade(makeTrade(orderbookv1.TradeID(i)))
	}

	recent := tape.RecentTrades(3)
	require.Len(t, recent, 3)
	assert.Equal(t, orderbookv1.TradeID(3), recent[0].TradeID)
	assert.Equal(t, orderbookv1.TradeID(5), recent[2].TradeID)

	all := tape.RecentTrades(50)
	assert.Len(t, all, 5)
}

func TestTradeTape_CapacityEvictsOldest(t *testing.T) {
	tape := NewTradeTape(3)

	for i := 1; i <= 5; i++ {
		tape.AddTrade(makeTrade(orderbookv1.TradeID(i)))
	}

	assert.Equal(t, 3, tape.Size())
	recent := tape.RecentTrades(3)
	assert.Equal(t, orderbookv1.TradeID(3), recent[0].TradeID)
	assert.Equal(t, orderbookv1.TradeID(5), recent[2].TradeID)
}

func TestTradeTape_Clear(t *testing.T) {
	tape := NewTradeTape(10)
	tape.AddTrade(makeTrade(1))

	tape.Clear()

	assert.Equal(t, 0, tape.Size())
	assert.Nil(t, tape.RecentTrades(10))
}

func TestTradeTape_ToCSV(t *testing.T) {
	tape := NewTradeTape(10)
	tape.AddTrade(makeTrade(1))

	csv := tape.ToCSV()
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "trade_id,symbol,timestamp,price,quantity,side,"+
		"aggressive_order_id,passive_order_id,aggressive_trader_id,passive_trader_id", lines[0])
	assert.Equal(t, "1,TEST,1,10000,100,BUY,2,1,101,100", lines[1])
}

func TestTradeTape_DefaultCapacity(t *testing.T) {
	tape := NewTradeTape(0)
	tape.AddTrade(makeTrade(1))
	assert.Equal(t, 1, tape.Size())
}
