package orderbookv1

// Order represents a single order in the order book. The book owns the
// order from the moment matching begins until it is fully filled or
// cancelled; callers hand in a value and the book keeps its own copy.
type Order struct {
	OrderID           OrderID     `json:"order_id"`
	TraderID          TraderID    `json:"trader_id"`
	Symbol            string      `json:"symbol"`
	Side              Side        `json:"side"`
	OrderType         OrderType   `json:"order_type"`
	Price             Price       `json:"price"`
	Quantity          Quantity    `json:"quantity"`
	RemainingQuantity Quantity    `json:"remaining_quantity"`
	TimeInForce       TimeInForce `json:"time_in_force"`
	Timestamp         Timestamp   `json:"timestamp"`

	// Advanced flags. Carried on the wire but not honored by the core.
	PostOnly        bool     `json:"post_only,omitempty"`
	Hidden          bool     `json:"hidden,omitempty"`
	DisplayQuantity Quantity `json:"display_quantity,omitempty"`

	// arrival orders same-price orders by time priority: assigned by the
	// book when the order is materialized, re-assigned on replace so the
	// replacement loses its place in the queue.
	arrival uint64
}

// IsBuy checks if the order is a buy order.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell checks if the order is a sell order.
func (o *Order) IsSell() bool {
	return o.Side == SideSell
}

// IsLimit checks if the order is a limit order.
func (o *Order) IsLimit() bool {
	return o.OrderType == OrderTypeLimit
}

// IsMarket checks if the order is a market order.
func (o *Order) IsMarket() bool {
	return o.OrderType == OrderTypeMarket
}

// IsFullyFilled checks if the order has no remaining quantity.
func (o *Order) IsFullyFilled() bool {
	return o.RemainingQuantity == 0
}

// IsIOC checks if the order is immediate-or-cancel.
func (o *Order) IsIOC() bool {
	return o.TimeInForce == TIFIOC
}

// IsFOK checks if the order is fill-or-kill.
func (o *Order) IsFOK() bool {
	return o.TimeInForce == TIFFOK
}

// FilledQuantity returns the quantity filled so far.
func (o *Order) FilledQuantity() Quantity {
	return o.Quantity - o.RemainingQuantity
}

// Arrival returns the book-assigned arrival counter used for time
// priority among same-price orders.
func (o *Order) Arrival() uint64 {
	return o.arrival
}

// SetArrival stamps the book-assigned arrival counter.
func (o *Order) SetArrival(n uint64) {
	o.arrival = n
}
