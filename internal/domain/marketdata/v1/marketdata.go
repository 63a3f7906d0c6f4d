package marketdatav1

import (
	"encoding/json"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

// PriceLevel represents one aggregated price level in a depth snapshot.
type PriceLevel struct {
	Price      orderbookv1.Price    `json:"price"`
	Quantity   orderbookv1.Quantity `json:"quantity"`
	OrderCount uint32               `json:"order_count"`
}

// TopOfBook represents the best bid and ask with their aggregated sizes.
type TopOfBook struct {
	Symbol    string                `json:"symbol"`
	BestBid   orderbookv1.Price     `json:"best_bid"`
	BestAsk   orderbookv1.Price     `json:"best_ask"`
	BidSize   orderbookv1.Quantity  `json:"bid_size"`
	AskSize   orderbookv1.Quantity  `json:"ask_size"`
	Timestamp orderbookv1.Timestamp `json:"timestamp"`
}

// MidPrice returns the midpoint of the best bid and ask, or InvalidPrice
// when either side is empty.
func (t *TopOfBook) MidPrice() orderbookv1.Price {
	if t.BestBid != orderbookv1.InvalidPrice && t.BestAsk != orderbookv1.InvalidPrice {
		return (t.BestBid + t.BestAsk) / 2
	}
	return orderbookv1.InvalidPrice
}

// Spread returns the difference between the best ask and bid, or
// InvalidPrice when either side is empty.
func (t *TopOfBook) Spread() orderbookv1.Price {
	if t.BestBid != orderbookv1.InvalidPrice && t.BestAsk != orderbookv1.InvalidPrice {
		return t.BestAsk - t.BestBid
	}
	return orderbookv1.InvalidPrice
}

// ToJSON renders the snapshot as a JSON object.
func (t *TopOfBook) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}

// DepthSnapshot represents up to N aggregated levels per side. Bids are in
// descending price order, asks in ascending price order.
type DepthSnapshot struct {
	Symbol         string                `json:"symbol"`
	Bids           []PriceLevel          `json:"bids"`
	Asks           []PriceLevel          `json:"asks"`
	Timestamp      orderbookv1.Timestamp `json:"timestamp"`
	SequenceNumber uint64                `json:"sequence_number"`
}

// ToJSON renders the snapshot as a JSON object.
func (s *DepthSnapshot) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}
