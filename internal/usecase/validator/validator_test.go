package validator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/Safalguptaofficial/production-lob-matching-engine/internal/domain/orderbook/v1"
)

func TestValidator_MatchingSequencePasses(t *testing.T) {
	v := New("TEST", orderbookv1.STPCancelIncoming)

	orders := []orderbookv1.Order{
		{OrderID: 1, TraderID: 100, Symbol: "TEST", Side: orderbookv1.SideSell, OrderType: orderbookv1.OrderTypeLimit, Price: 10000, Quantity: 100, RemainingQuantity: 100},
		{OrderID: 2, TraderID: 101, Symbol: "TEST", Side: orderbookv1.SideBuy, OrderType: orderbookv1.OrderTypeLimit, Price: 10000, Quantity: 60, RemainingQuantity: 60},
		{OrderID: 3, TraderID: 102, Symbol: "TEST", Side: orderbookv1.SideBuy, OrderType: orderbookv1.OrderTypeLimit, Price: 9999, Quantity: 40, RemainingQuantity: 40},
	}

	for i, order := range orders {
		result := v.AddOrder(order, orderbookv1.Timestamp(i+1))
		assert.True(t, result.Passed, result.Summary())
	}

	result := v.CompareStates()
	assert.True(t, result.Passed, result.Summary())
}

func TestValidator_DetectsDivergence(t *testing.T) {
	v := New("TEST", orderbookv1.STPNone)

	order := orderbookv1.Order{
		OrderID: 1, TraderID: 100, Symbol: "TEST",
		Side: orderbookv1.SideBuy, OrderType: orderbookv1.OrderTypeLimit,
		Price: 10000, Quantity: 100, RemainingQuantity: 100,
	}
	require.True(t, v.AddOrder(order, 1).Passed)

	// poke one book out from under the validator
	require.True(t, v.Optimized().CancelOrder(1))

	result := v.CompareStates()
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.Mismatches)
	assert.Contains(t, result.Summary(), "FAILED")
}

// Cross-engine fuzz: a fixed-seed random stream must produce identical
// trades and identical books at every step.
func TestValidator_CrossEngineFuzz(t *testing.T) {
	policies := []orderbookv1.STPPolicy{
		orderbookv1.STPNone,
		orderbookv1.STPCancelIncoming,
		orderbookv1.STPCancelResting,
		orderbookv1.STPCancelBoth,
	}

	for _, policy := range policies {
		t.Run(policy.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			v := New("FUZZ", policy)

			var live []orderbookv1.OrderID
			nextID := orderbookv1.OrderID(1)

			for i := 0; i < 1000; i++ {
				ts := orderbookv1.Timestamp(i + 1)
				action := rng.Intn(10)

				switch {
				case action < 7 || len(live) == 0:
					order := randomOrder(rng, nextID)
					result := v.AddOrder(order, ts)
					require.True(t, result.Passed, "op %d: %s", i, result.Summary())
					if _, ok := v.Optimized().FindOrder(order.OrderID); ok {
						live = append(live, order.OrderID)
					}
					nextID++
				case action < 9:
					idx := rng.Intn(len(live))
					result := v.CancelOrder(live[idx])
					require.True(t, result.Passed, "op %d: %s", i, result.Summary())
					live = append(live[:idx], live[idx+1:]...)
				default:
					idx := rng.Intn(len(live))
					id := live[idx]
					newPrice := orderbookv1.Price(9990 + rng.Intn(21))
					newQuantity := orderbookv1.Quantity(rng.Intn(200) + 1)
					result := v.ReplaceOrder(id, newPrice, newQuantity, ts)
					require.True(t, result.Passed, "op %d: %s", i, result.Summary())
					if _, ok := v.Optimized().FindOrder(id); !ok {
						live = append(live[:idx], live[idx+1:]...)
					}
				}

				// prune ids consumed by matching
				live = pruneLive(v, live)

				require.NoError(t, v.Optimized().CheckInvariants(), "op %d", i)
			}

			result := v.CompareStates()
			require.True(t, result.Passed, result.Summary())
		})
	}
}

func randomOrder(rng *rand.Rand, id orderbookv1.OrderID) orderbookv1.Order {
	side := orderbookv1.SideBuy
	if rng.Intn(2) == 1 {
		side = orderbookv1.SideSell
	}

	orderType := orderbookv1.OrderTypeLimit
	if rng.Intn(10) == 0 {
		orderType = orderbookv1.OrderTypeMarket
	}

	tif := orderbookv1.TIFDay
	switch rng.Intn(10) {
	case 0:
		tif = orderbookv1.TIFIOC
	case 1:
		tif = orderbookv1.TIFFOK
	case 2:
		tif = orderbookv1.TIFGTC
	}

	quantity := orderbookv1.Quantity(rng.Intn(200) + 1)
	return orderbookv1.Order{
		OrderID:           id,
		TraderID:          orderbookv1.TraderID(rng.Intn(5) + 1),
		Symbol:            "FUZZ",
		Side:              side,
		OrderType:         orderType,
		Price:             orderbookv1.Price(9990 + rng.Intn(21)),
		Quantity:          quantity,
		RemainingQuantity: quantity,
		TimeInForce:       tif,
	}
}

func pruneLive(v *Validator, live []orderbookv1.OrderID) []orderbookv1.OrderID {
	out := live[:0]
	for _, id := range live {
		if _, ok := v.Optimized().FindOrder(id); ok {
			out = append(out, id)
		}
	}
	return out
}
