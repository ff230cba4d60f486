package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backsim/market"
)

var testBase = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func closeSeries(t *testing.T, closes ...float64) *market.PriceSeries {
	t.Helper()
	s := market.NewSeries("TEST")
	for i, c := range closes {
		require.NoError(t, s.Append(market.PricePoint{
			Time: testBase.Add(time.Duration(i) * time.Minute), Open: c, High: c, Low: c, Close: c, Volume: 100,
		}))
	}
	return s
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"ma-cross", "macd-cross"}, Names())

	_, err := ByName("mean-reversion", Periods{})
	assert.Error(t, err)

	st, err := ByName("ma-cross", Periods{Fast: 3, Slow: 5})
	require.NoError(t, err)
	assert.Equal(t, "ma-cross(3,5)", st.Name())

	st, err = ByName("macd-cross", Periods{Fast: 12, Slow: 26, Signal: 9})
	require.NoError(t, err)
	assert.Equal(t, "macd-cross(12,26,9)", st.Name())
}

func TestCrossoverSinglePass(t *testing.T) {
	// Fast rises through slow exactly once: one BUY, no SELL.
	fast := []float64{1, 1, 2, 2}
	slow := []float64{2, 2, 1, 1}

	var cross crossover
	var buys, sells int
	for i := range fast {
		act, fired := cross.next(fast[i], slow[i])
		if !fired {
			continue
		}
		switch act {
		case Buy:
			buys++
		case Sell:
			sells++
		}
	}
	assert.Equal(t, 1, buys)
	assert.Equal(t, 0, sells)
}

func TestCrossoverFirstPairOnlyPrimes(t *testing.T) {
	var cross crossover

	// Fast already above slow at the first observation: no signal, the
	// state just primes.
	_, fired := cross.next(5, 1)
	assert.False(t, fired)

	// No movement, no signal.
	_, fired = cross.next(5, 1)
	assert.False(t, fired)

	act, fired := cross.next(0, 1)
	assert.True(t, fired)
	assert.Equal(t, Sell, act)
}

func TestCrossoverEqualityDefers(t *testing.T) {
	var cross crossover

	// fast approaches slow from below, touches it, then breaks above. The
	// touch itself must not fire; the strict break must.
	cross.next(1, 2)

	_, fired := cross.next(2, 2)
	assert.False(t, fired)

	act, fired := cross.next(3, 2)
	assert.True(t, fired)
	assert.Equal(t, Buy, act)
}

func TestCrossoverAlternation(t *testing.T) {
	fast := []float64{1, 3, 1, 3, 1}
	slow := []float64{2, 2, 2, 2, 2}

	var cross crossover
	var got []Action
	for i := range fast {
		if act, fired := cross.next(fast[i], slow[i]); fired {
			got = append(got, act)
		}
	}
	assert.Equal(t, []Action{Buy, Sell, Buy, Sell}, got)
}

func TestDualMASignals(t *testing.T) {
	// A V-shaped series: the fast average dips below the slow one on the
	// way down and recrosses on the way up.
	closes := []float64{
		100, 100, 100, 100, 100, 100,
		90, 80, 70, 60, 50, 50, 50,
		60, 70, 80, 90, 100, 110, 120, 130, 140,
	}
	s := closeSeries(t, closes...)

	st := NewDualMA(2, 5)
	signals := st.GenerateSignals(s)
	require.NotEmpty(t, signals)

	// First cross on the way down is a SELL, followed later by a BUY.
	assert.Equal(t, Sell, signals[0].Action)

	var sawBuy bool
	prev := time.Time{}
	for _, sig := range signals {
		assert.True(t, sig.Time.After(prev), "signals must be chronological")
		prev = sig.Time
		assert.Equal(t, st.Name(), sig.Strategy)

		// Price is the close at the signal's timestamp.
		want, ok := s.CloseAt(sig.Time)
		require.True(t, ok)
		assert.Equal(t, want, sig.Price)

		if sig.Action == Buy {
			sawBuy = true
		}
	}
	assert.True(t, sawBuy)
}

func TestDualMAInsufficientHistory(t *testing.T) {
	s := closeSeries(t, 100, 101, 102)
	assert.Empty(t, NewDualMA(5, 10).GenerateSignals(s))
}

func TestMACDCrossSignals(t *testing.T) {
	// Downtrend then uptrend pushes DIF below DEA and back across.
	var closes []float64
	for i := 0; i < 30; i++ {
		closes = append(closes, 100-float64(i))
	}
	for i := 0; i < 30; i++ {
		closes = append(closes, 70+2*float64(i))
	}
	s := closeSeries(t, closes...)

	st := NewMACDCross(5, 10, 4)
	signals := st.GenerateSignals(s)
	require.NotEmpty(t, signals)

	var sawBuy bool
	prev := time.Time{}
	for _, sig := range signals {
		assert.True(t, sig.Time.After(prev))
		prev = sig.Time
		assert.Equal(t, "macd-cross(5,10,4)", sig.Strategy)
		if sig.Action == Buy {
			sawBuy = true
		}
	}
	assert.True(t, sawBuy)
}

func TestMACDCrossInsufficientHistory(t *testing.T) {
	s := closeSeries(t, 100, 101)
	assert.Empty(t, NewMACDCross(5, 10, 4).GenerateSignals(s))
}
