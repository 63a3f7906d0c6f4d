package orderbookv1

// TradeEvent represents a fill between an aggressive and a passive order.
// The price is always the passive (resting) order's price.
type TradeEvent struct {
	TradeID           TradeID   `json:"trade_id"`
	Symbol            string    `json:"symbol"`
	Price             Price     `json:"price"`
	Quantity          Quantity  `json:"quantity"`
	AggressorSide     Side      `json:"aggressor_side"`
	AggressiveOrderID OrderID   `json:"aggressive_order_id"`
	PassiveOrderID    OrderID   `json:"passive_order_id"`
	AggressiveTrader  TraderID  `json:"aggressive_trader_id"`
	PassiveTrader     TraderID  `json:"passive_trader_id"`
	Timestamp         Timestamp `json:"timestamp"`
	SequenceNumber    uint64    `json:"sequence_number"`
}

// OrderAcceptedEvent represents acceptance of a new order by the engine.
type OrderAcceptedEvent struct {
	OrderID        OrderID   `json:"order_id"`
	Symbol         string    `json:"symbol"`
	Side           Side      `json:"side"`
	Price          Price     `json:"price"`
	Quantity       Quantity  `json:"quantity"`
	Timestamp      Timestamp `json:"timestamp"`
	SequenceNumber uint64    `json:"sequence_number"`
}

// OrderRejectedEvent represents a rejected request.
type OrderRejectedEvent struct {
	OrderID        OrderID    `json:"order_id"`
	Symbol         string     `json:"symbol"`
	Reason         ResultCode `json:"reason"`
	Message        string     `json:"message"`
	Timestamp      Timestamp  `json:"timestamp"`
	SequenceNumber uint64     `json:"sequence_number"`
}

// OrderCancelledEvent represents a successful cancellation.
type OrderCancelledEvent struct {
	OrderID           OrderID   `json:"order_id"`
	Symbol            string    `json:"symbol"`
	RemainingQuantity Quantity  `json:"remaining_quantity"`
	Timestamp         Timestamp `json:"timestamp"`
	SequenceNumber    uint64    `json:"sequence_number"`
}

// OrderReplacedEvent represents a successful replacement. The book keeps
// the original order id, so OldOrderID equals NewOrderID.
type OrderReplacedEvent struct {
	OldOrderID     OrderID   `json:"old_order_id"`
	NewOrderID     OrderID   `json:"new_order_id"`
	Symbol         string    `json:"symbol"`
	NewPrice       Price     `json:"new_price"`
	NewQuantity    Quantity  `json:"new_quantity"`
	Timestamp      Timestamp `json:"timestamp"`
	SequenceNumber uint64    `json:"sequence_number"`
}

// BookUpdateEvent represents a change of a price level, published to
// listeners for market data feeds. Quantity zero means the level is gone.
type BookUpdateEvent struct {
	Symbol         string    `json:"symbol"`
	Side           Side      `json:"side"`
	Price          Price     `json:"price"`
	Quantity       Quantity  `json:"quantity"`
	Timestamp      Timestamp `json:"timestamp"`
	SequenceNumber uint64    `json:"sequence_number"`
}
