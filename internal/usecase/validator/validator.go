// Package validator drives identical request streams through the
// optimized and the reference book and diffs every externally observable
// output. A mismatch means one of the matchers is wrong.
package validator

import (
	"fmt"
	"strings"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/orderbook"
	"github.com/Safalguptaofficial/production-lob-matching-engine/internal/usecase/refbook"
)

// Result collects the mismatches of one validated operation.
type Result struct {
	Passed     bool
	Mismatches []string
}

// AddMismatch records a failure.
func (r *Result) AddMismatch(msg string) {
	r.Passed = false
	r.Mismatches = append(r.Mismatches, msg)
}

// Summary renders the result for logs.
func (r *Result) Summary() string {
	if r.Passed {
		return "PASSED"
	}

	var sb strings.Builder
	sb.WriteString("FAILED:\n")
	for _, mismatch := range r.Mismatches {
		sb.WriteString("  - ")
		sb.WriteString(mismatch)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Validator runs both matchers side by side for one symbol.
type Validator struct {
	optimized *orderbook.OrderBook
	reference *refbook.ReferenceBook
}

// New creates a validator with fresh books for the symbol.
func New(symbol string, stpPolicy orderbookv1.STPPolicy) *Validator {
	return &Validator{
		optimized: orderbook.NewOrderBook(symbol, stpPolicy),
		reference: refbook.NewReferenceBook(symbol, stpPolicy),
	}
}

// Optimized exposes the optimized book for further assertions.
func (v *Validator) Optimized() *orderbook.OrderBook {
	return v.optimized
}

// Reference exposes the reference book for further assertions.
func (v *Validator) Reference() *refbook.ReferenceBook {
	return v.reference
}

// AddOrder applies the order to both books and compares the trades and
// the resulting top of book.
func (v *Validator) AddOrder(order orderbookv1.Order, now orderbookv1.Timestamp) Result {
	result := Result{Passed: true}

	optimizedTrades := v.optimized.AddOrder(order, now)
	referenceTrades := v.reference.AddOrder(order, now)

	v.compareTrades(optimizedTrades, referenceTrades, &result)
	v.compareTopOfBook(&result)

	return result
}

// CancelOrder applies the cancel to both books and compares outcomes.
func (v *Validator) CancelOrder(orderID orderbookv1.OrderID) Result {
	result := Result{Passed: true}

	optimizedOK := v.optimized.CancelOrder(orderID)
	referenceOK := v.reference.CancelOrder(orderID)

	if optimizedOK != referenceOK {
		result.AddMismatch(fmt.Sprintf("cancel outcome mismatch for order %d: optimized=%t, reference=%t",
			orderID, optimizedOK, referenceOK))
	}
	v.compareTopOfBook(&result)

	return result
}

// ReplaceOrder applies the replace to both books and compares trades and
// top of book.
func (v *Validator) ReplaceOrder(orderID orderbookv1.OrderID, newPrice orderbookv1.Price, newQuantity orderbookv1.Quantity, now orderbookv1.Timestamp) Result {
	result := Result{Passed: true}

	optimizedTrades := v.optimized.ReplaceOrder(orderID, newPrice, newQuantity, now)
	referenceTrades := v.reference.ReplaceOrder(orderID, newPrice, newQuantity, now)

	v.compareTrades(optimizedTrades, referenceTrades, &result)
	v.compareTopOfBook(&result)

	return result
}

// CompareStates diffs the final book states: top of book and ten depth
// levels per side.
func (v *Validator) CompareStates() Result {
	result := Result{Passed: true}

	v.compareTopOfBook(&result)
	v.compareDepth(&result)

	return result
}

func (v *Validator) compareTrades(optimized, reference []orderbookv1.TradeEvent, result *Result) {
	if len(optimized) != len(reference) {
		result.AddMismatch(fmt.Sprintf("trade count mismatch: optimized=%d, reference=%d",
			len(optimized), len(reference)))
		return
	}

	for i := range optimized {
		opt, ref := optimized[i], reference[i]

		if opt.TradeID != ref.TradeID {
			result.AddMismatch(fmt.Sprintf("trade %d id mismatch: optimized=%d, reference=%d", i, opt.TradeID, ref.TradeID))
		}
		if opt.Price != ref.Price {
			result.AddMismatch(fmt.Sprintf("trade %d price mismatch: optimized=%d, reference=%d", i, opt.Price, ref.Price))
		}
		if opt.Quantity != ref.Quantity {
			result.AddMismatch(fmt.Sprintf("trade %d quantity mismatch: optimized=%d, reference=%d", i, opt.Quantity, ref.Quantity))
		}
		if opt.AggressiveOrderID != ref.AggressiveOrderID {
			result.AddMismatch(fmt.Sprintf("trade %d aggressive order mismatch: optimized=%d, reference=%d", i, opt.AggressiveOrderID, ref.AggressiveOrderID))
		}
		if opt.PassiveOrderID != ref.PassiveOrderID {
			result.AddMismatch(fmt.Sprintf("trade %d passive order mismatch: optimized=%d, reference=%d", i, opt.PassiveOrderID, ref.PassiveOrderID))
		}
		if opt.AggressorSide != ref.AggressorSide {
			result.AddMismatch(fmt.Sprintf("trade %d aggressor side mismatch: optimized=%s, reference=%s", i, opt.AggressorSide, ref.AggressorSide))
		}
	}
}

func (v *Validator) compareTopOfBook(result *Result) {
	optBid, optHasBid := v.optimized.BestBid()
	refBid, refHasBid := v.reference.BestBid()
	if optHasBid != refHasBid || (optHasBid && optBid != refBid) {
		result.AddMismatch(fmt.Sprintf("best bid mismatch: optimized=%s, reference=%s",
			formatPrice(optBid, optHasBid), formatPrice(refBid, refHasBid)))
	}

	optAsk, optHasAsk := v.optimized.BestAsk()
	refAsk, refHasAsk := v.reference.BestAsk()
	if optHasAsk != refHasAsk || (optHasAsk && optAsk != refAsk) {
		result.AddMismatch(fmt.Sprintf("best ask mismatch: optimized=%s, reference=%s",
			formatPrice(optAsk, optHasAsk), formatPrice(refAsk, refHasAsk)))
	}
}

func (v *Validator) compareDepth(result *Result) {
	const depthLevels = 10

	optDepth := v.optimized.DepthSnapshot(depthLevels, 0)
	refDepth := v.reference.DepthSnapshot(depthLevels, 0)

	if len(optDepth.Bids) != len(refDepth.Bids) {
		result.AddMismatch(fmt.Sprintf("bid level count mismatch: optimized=%d, reference=%d",
			len(optDepth.Bids), len(refDepth.Bids)))
	}
	if len(optDepth.Asks) != len(refDepth.Asks) {
		result.AddMismatch(fmt.Sprintf("ask level count mismatch: optimized=%d, reference=%d",
			len(optDepth.Asks), len(refDepth.Asks)))
	}

	for i := 0; i < min(len(optDepth.Bids), len(refDepth.Bids)); i++ {
		if optDepth.Bids[i].Price != refDepth.Bids[i].Price || optDepth.Bids[i].Quantity != refDepth.Bids[i].Quantity {
			result.AddMismatch(fmt.Sprintf("bid level %d mismatch", i))
		}
	}
	for i := 0; i < min(len(optDepth.Asks), len(refDepth.Asks)); i++ {
		if optDepth.Asks[i].Price != refDepth.Asks[i].Price || optDepth.Asks[i].Quantity != refDepth.Asks[i].Quantity {
			result.AddMismatch(fmt.Sprintf("ask level %d mismatch", i))
		}
	}
}

func formatPrice(price orderbookv1.Price, ok bool) string {
	if !ok {
		return "NONE"
	}
	return fmt.Sprintf("%d", price)
}
