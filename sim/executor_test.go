package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backsim/strategies"
)

var testBase = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func at(i int) time.Time { return testBase.Add(time.Duration(i) * time.Minute) }

func TestBuyRejectsOverspend(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)

	assert.False(t, x.Buy(at(0), 100, 11)) // cost 1100 > 1000
	assert.True(t, x.Buy(at(0), 100, 10))  // exactly all cash

	assert.Equal(t, 0.0, x.Cash())
	assert.Equal(t, 10.0, x.Quantity())
	assert.False(t, x.Buy(at(1), 100, 0.001))
}

func TestBuyRejectsBadInputs(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)

	assert.False(t, x.Buy(at(0), 0, 1))
	assert.False(t, x.Buy(at(0), -5, 1))
	assert.False(t, x.Buy(at(0), 10, 0))
	assert.False(t, x.Buy(at(0), 10, -1))
	assert.Empty(t, x.Trades())
}

func TestSellRejectsOverdraw(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)

	assert.False(t, x.Sell(at(0), 100, 1)) // nothing held

	require.True(t, x.Buy(at(0), 100, 5))
	assert.False(t, x.Sell(at(1), 100, 6))
	assert.True(t, x.Sell(at(1), 100, 5))
	assert.Equal(t, 0.0, x.Quantity())
}

func TestCashAndQuantityNeverNegative(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)

	require.True(t, x.Buy(at(0), 3, 1000.0/3)) // cash/price, inexact
	assert.GreaterOrEqual(t, x.Cash(), 0.0)

	require.True(t, x.Sell(at(1), 4, x.Quantity()))
	assert.GreaterOrEqual(t, x.Quantity(), 0.0)
	assert.GreaterOrEqual(t, x.Cash(), 0.0)
}

func TestCapitalMarking(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)
	assert.Equal(t, 1000.0, x.Capital())

	require.True(t, x.Buy(at(0), 100, 5))
	// 500 cash + 5 * 100 = 1000, capital unchanged by the purchase itself.
	assert.InDelta(t, 1000.0, x.Capital(), 1e-9)

	require.True(t, x.Sell(at(1), 120, 5))
	assert.InDelta(t, 1100.0, x.Capital(), 1e-9)
	assert.InDelta(t, 1100.0, x.Cash(), 1e-9)
}

func TestLotsCloseLIFO(t *testing.T) {
	x := NewExecutor(10000, AllIn{}, nil)

	require.True(t, x.Buy(at(0), 100, 10)) // lot A
	require.True(t, x.Buy(at(1), 110, 10)) // lot B
	require.Len(t, x.OpenLots(), 2)

	// First SELL consumes lot B (entry 110), second consumes lot A (100).
	require.True(t, x.Sell(at(2), 121, 10))
	require.True(t, x.Sell(at(3), 121, 10))

	returns := x.TradeReturns()
	require.Len(t, returns, 2)
	assert.InDelta(t, (121.0-110)/110, returns[0], 1e-9)
	assert.InDelta(t, (121.0-100)/100, returns[1], 1e-9)
	assert.Empty(t, x.OpenLots())
}

func TestSellSpanningLots(t *testing.T) {
	x := NewExecutor(10000, AllIn{}, nil)

	require.True(t, x.Buy(at(0), 100, 10))
	require.True(t, x.Buy(at(1), 110, 10))

	// 15 units: the whole 110 lot plus 5 of the 100 lot. Weighted entry is
	// (110*10 + 100*5)/15.
	require.True(t, x.Sell(at(2), 120, 15))

	returns := x.TradeReturns()
	require.Len(t, returns, 1)
	entry := (110.0*10 + 100.0*5) / 15
	assert.InDelta(t, (120-entry)/entry, returns[0], 1e-9)

	lots := x.OpenLots()
	require.Len(t, lots, 1)
	assert.InDelta(t, 5.0, lots[0].Quantity, 1e-9)
	assert.Equal(t, 100.0, lots[0].Price)
}

func TestEquityCurve(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)
	assert.Equal(t, []float64{1000}, x.EquityCurve())

	require.True(t, x.Buy(at(0), 100, 10))
	require.True(t, x.Sell(at(1), 110, 10))

	curve := x.EquityCurve()
	require.Len(t, curve, 3) // initial + one point per trade
	assert.InDelta(t, 1000.0, curve[1], 1e-9)
	assert.InDelta(t, 1100.0, curve[2], 1e-9)
}

func TestTradeLedger(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)

	require.True(t, x.Buy(at(0), 100, 10))
	require.True(t, x.Sell(at(5), 110, 10))

	trades := x.Trades()
	require.Len(t, trades, 2)

	assert.NotEmpty(t, trades[0].ID)
	assert.NotEqual(t, trades[0].ID, trades[1].ID)
	assert.Equal(t, strategies.Buy, trades[0].Action)
	assert.Equal(t, at(0), trades[0].Time)
	assert.InDelta(t, 0.0, trades[0].CashAfter, 1e-9)
	assert.Equal(t, strategies.Sell, trades[1].Action)
	assert.InDelta(t, 1100.0, trades[1].CashAfter, 1e-9)
	assert.InDelta(t, 1100.0, trades[1].CapitalAfter, 1e-9)
}

func TestHandleSignalAllIn(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)

	buy := strategies.Signal{Time: at(0), Action: strategies.Buy, Price: 100, Strategy: "test"}
	sell := strategies.Signal{Time: at(1), Action: strategies.Sell, Price: 110, Strategy: "test"}

	assert.True(t, x.HandleSignal(buy))
	// Consecutive BUY with zero cash is rejected.
	assert.False(t, x.HandleSignal(buy))

	assert.True(t, x.HandleSignal(sell))
	// Nothing left to sell.
	assert.False(t, x.HandleSignal(sell))

	assert.InDelta(t, 1100.0, x.Capital(), 1e-9)
	assert.Len(t, x.Trades(), 2)
}

func TestHandleSignalAllInRepurchase(t *testing.T) {
	// After an all-in BUY the next all-in repurchase at a different price
	// must survive float rounding on cash/price.
	x := NewExecutor(100000, AllIn{}, nil)

	prices := []float64{99.7, 103.3, 101.1, 97.9, 102.5}
	action := strategies.Buy
	for i, p := range prices {
		sig := strategies.Signal{Time: at(i), Action: action, Price: p, Strategy: "test"}
		assert.True(t, x.HandleSignal(sig))
		if action == strategies.Buy {
			action = strategies.Sell
		} else {
			action = strategies.Buy
		}
		assert.GreaterOrEqual(t, x.Cash(), 0.0)
		assert.GreaterOrEqual(t, x.Quantity(), 0.0)
	}
}

func TestHandleSignalUnknownAction(t *testing.T) {
	x := NewExecutor(1000, AllIn{}, nil)
	assert.False(t, x.HandleSignal(strategies.Signal{Time: at(0), Action: "HOLD", Price: 100}))
}
