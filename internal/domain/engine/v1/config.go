package enginev1

import (
	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// SymbolConfig represents the per-symbol engine configuration.
type SymbolConfig struct {
	Symbol      string                `json:"symbol"`
	TickSize    orderbookv1.Price     `json:"tick_size"`
	LotSize     orderbookv1.Quantity  `json:"lot_size"`
	MinQuantity orderbookv1.Quantity  `json:"min_quantity"`
	STPPolicy   orderbookv1.STPPolicy `json:"stp_policy"`
}

// DefaultSymbolConfig returns a config with unit tick, lot and minimum
// quantity and self-trade prevention cancelling the incoming order.
func DefaultSymbolConfig(symbol string) SymbolConfig {
	return SymbolConfig{
		Symbol:      symbol,
		TickSize:    1,
		LotSize:     1,
		MinQuantity: 1,
		STPPolicy:   orderbookv1.STPCancelIncoming,
	}
}

// IsValid reports whether the config can be registered: non-empty symbol
// and strictly positive tick size, lot size and minimum quantity.
func (c *SymbolConfig) IsValid() bool {
	return c.Symbol != "" && c.TickSize > 0 && c.LotSize > 0 && c.MinQuantity > 0
}
