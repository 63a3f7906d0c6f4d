package orderbookv1

// NewOrderRequest represents a request to place an order.
type NewOrderRequest struct {
	OrderID     OrderID     `json:"order_id"`
	TraderID    TraderID    `json:"trader_id"`
	Symbol      string      `json:"symbol"`
	Side        Side        `json:"side"`
	OrderType   OrderType   `json:"order_type"`
	Price       Price       `json:"price"`
	Quantity    Quantity    `json:"quantity"`
	TimeInForce TimeInForce `json:"time_in_force"`
	Timestamp   Timestamp   `json:"timestamp"`
}

// ToOrder converts the request into a fresh order with full remaining
// quantity.
func (r *NewOrderRequest) ToOrder() Order {
	return Order{
		OrderID:           r.OrderID,
		TraderID:          r.TraderID,
		Symbol:            r.Symbol,
		Side:              r.Side,
		OrderType:         r.OrderType,
		Price:             r.Price,
		Quantity:          r.Quantity,
		RemainingQuantity: r.Quantity,
		TimeInForce:       r.TimeInForce,
		Timestamp:         r.Timestamp,
	}
}

// CancelRequest represents a request to cancel a resting order.
type CancelRequest struct {
	OrderID   OrderID   `json:"order_id"`
	Symbol    string    `json:"symbol"`
	Timestamp Timestamp `json:"timestamp"`
}

// ReplaceRequest represents a request to modify the price and quantity of
// a resting order. The replacement loses time priority.
type ReplaceRequest struct {
	OrderID     OrderID   `json:"order_id"`
	Symbol      string    `json:"symbol"`
	NewPrice    Price     `json:"new_price"`
	NewQuantity Quantity  `json:"new_quantity"`
	Timestamp   Timestamp `json:"timestamp"`
}

// OrderResponse represents the complete synchronous outcome of a request:
// the result code plus every event the request produced, in emission
// order.
type OrderResponse struct {
	OrderID  OrderID               `json:"order_id"`
	Result   ResultCode            `json:"result"`
	Message  string                `json:"message,omitempty"`
	Accepts  []OrderAcceptedEvent  `json:"accepts,omitempty"`
	Rejects  []OrderRejectedEvent  `json:"rejects,omitempty"`
	Cancels  []OrderCancelledEvent `json:"cancels,omitempty"`
	Replaces []OrderReplacedEvent  `json:"replaces,omitempty"`
	Trades   []TradeEvent          `json:"trades,omitempty"`
}
