package orderbookv1

// OrderID identifies a single order. Zero is the invalid sentinel.
type OrderID = uint64

// TraderID identifies the owner of an order. Zero is the invalid sentinel.
type TraderID = uint64

// TradeID identifies a trade within one book. Monotone per book.
type TradeID = uint64

// Price is a signed fixed-point price in ticks (e.g. cents).
type Price = int64

// Quantity is an unsigned order or trade size.
type Quantity = uint64

// Timestamp is nanoseconds since epoch or a logical counter in
// deterministic mode.
type Timestamp = int64

// Sentinel values for the scalar types.
const (
	// InvalidPrice marks an absent or unusable price.
	InvalidPrice Price = -1
	// InvalidQuantity marks an absent or unusable quantity.
	InvalidQuantity Quantity = 0
	// InvalidOrderID marks an absent order id.
	InvalidOrderID OrderID = 0
	// InvalidTraderID marks an absent trader id.
	InvalidTraderID TraderID = 0
)

// Side represents the side of an order.
type Side uint8

const (
	// SideBuy represents a buy (bid) order.
	SideBuy Side = iota
	// SideSell represents a sell (ask) order.
	SideSell
)

// String returns the wire name of the side.
func (s Side) String() string {
	if s == SideBuy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType represents the type of order.
type OrderType uint8

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = iota
	// OrderTypeMarket represents a market order.
	OrderTypeMarket
)

// String returns the wire name of the order type.
func (t OrderType) String() string {
	if t == OrderTypeMarket {
		return "MARKET"
	}
	return "LIMIT"
}

// TimeInForce represents how long an order stays eligible for matching.
type TimeInForce uint8

const (
	// TIFDay rests until cancelled (same behavior as TIFGTC in this engine).
	TIFDay TimeInForce = iota
	// TIFIOC fills what it can immediately and never rests.
	TIFIOC
	// TIFFOK fills entirely and immediately or not at all.
	TIFFOK
	// TIFGTC rests until cancelled.
	TIFGTC
	// TIFGTD rests until a given date. Treated as TIFGTC by the core.
	TIFGTD
)

// String returns the wire name of the time in force.
func (t TimeInForce) String() string {
	switch t {
	case TIFIOC:
		return "IOC"
	case TIFFOK:
		return "FOK"
	case TIFGTC:
		return "GTC"
	case TIFGTD:
		return "GTD"
	default:
		return "DAY"
	}
}

// STPPolicy represents the self-trade prevention policy of a symbol.
type STPPolicy uint8

const (
	// STPNone disables self-trade prevention; same-trader matches trade.
	STPNone STPPolicy = iota
	// STPCancelIncoming zeroes the incoming order and stops matching it.
	STPCancelIncoming
	// STPCancelResting removes the resting order and keeps matching.
	STPCancelResting
	// STPCancelBoth removes the resting order, zeroes the incoming order
	// and stops matching.
	STPCancelBoth
)

// String returns the wire name of the policy.
func (p STPPolicy) String() string {
	switch p {
	case STPCancelIncoming:
		return "CANCEL_INCOMING"
	case STPCancelResting:
		return "CANCEL_RESTING"
	case STPCancelBoth:
		return "CANCEL_BOTH"
	default:
		return "NONE"
	}
}

// ResultCode represents the outcome of handling a request.
type ResultCode uint8

const (
	// ResultSuccess indicates the request was processed.
	ResultSuccess ResultCode = 0
	// ResultRejectedInvalidSymbol indicates the symbol is not registered.
	ResultRejectedInvalidSymbol ResultCode = 1
	// ResultRejectedInvalidPrice indicates a non-positive limit price.
	ResultRejectedInvalidPrice ResultCode = 2
	// ResultRejectedInvalidQuantity indicates a zero quantity.
	ResultRejectedInvalidQuantity ResultCode = 3
	// ResultRejectedOrderNotFound indicates an unknown order id.
	ResultRejectedOrderNotFound ResultCode = 4
	// ResultRejectedSelfTrade indicates a self-trade rejection.
	ResultRejectedSelfTrade ResultCode = 5
	// ResultRejectedFOKNotFillable indicates an unfillable FOK order.
	ResultRejectedFOKNotFillable ResultCode = 6
	// ResultRejectedRiskLimit indicates a risk limit rejection.
	ResultRejectedRiskLimit ResultCode = 7
	// ResultRejectedUnknownError indicates an unclassified rejection.
	ResultRejectedUnknownError ResultCode = 255
)

// String returns the wire name of the result code.
func (c ResultCode) String() string {
	switch c {
	case ResultSuccess:
		return "SUCCESS"
	case ResultRejectedInvalidSymbol:
		return "REJECTED_INVALID_SYMBOL"
	case ResultRejectedInvalidPrice:
		return "REJECTED_INVALID_PRICE"
	case ResultRejectedInvalidQuantity:
		return "REJECTED_INVALID_QUANTITY"
	case ResultRejectedOrderNotFound:
		return "REJECTED_ORDER_NOT_FOUND"
	case ResultRejectedSelfTrade:
		return "REJECTED_SELF_TRADE"
	case ResultRejectedFOKNotFillable:
		return "REJECTED_FOK_NOT_FILLABLE"
	case ResultRejectedRiskLimit:
		return "REJECTED_RISK_LIMIT"
	default:
		return "REJECTED_UNKNOWN_ERROR"
	}
}
