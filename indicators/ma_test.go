package indicators

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

func TestSMA(t *testing.T) {
	s := closeSeries(t, 1, 2, 3, 4, 5, 6)

	got := SMA(s, 3)
	require.Len(t, got, 3)

	// Window is the trailing 3 closes before each index.
	assert.InDelta(t, 2.0, got[0].Value, 1e-9) // (1+2+3)/3
	assert.InDelta(t, 3.0, got[1].Value, 1e-9) // (2+3+4)/3
	assert.InDelta(t, 4.0, got[2].Value, 1e-9) // (3+4+5)/3

	// Samples align with the index the window precedes.
	assert.Equal(t, testBase.Add(3*time.Minute), got[0].Time)
	assert.Equal(t, testBase.Add(5*time.Minute), got[2].Time)
}

func TestSMAInsufficientHistory(t *testing.T) {
	// Exactly n closes is still one short of the first computable sample.
	s := closeSeries(t, 1, 2, 3)
	assert.Empty(t, SMA(s, 3))
	assert.Empty(t, SMA(s, 10))
	assert.Empty(t, SMA(s, 0))
	assert.Empty(t, SMA(market.NewSeries("TEST"), 3))
}

func TestSMAConstantSeries(t *testing.T) {
	s := closeSeries(t, 7, 7, 7, 7, 7, 7, 7, 7)
	for _, sample := range SMA(s, 4) {
		assert.InDelta(t, 7.0, sample.Value, 1e-9)
	}
}

func TestEMA(t *testing.T) {
	s := closeSeries(t, 10, 20, 30)

	got := EMA(s, 2)
	require.Len(t, got, 3)

	// alpha = 2/(n+1) = 2/3, seeded with the first close.
	assert.InDelta(t, 10.0, got[0].Value, 1e-9)
	assert.InDelta(t, 10+2.0/3*10, got[1].Value, 1e-9)
	ema1 := 10 + 2.0/3*10
	assert.InDelta(t, ema1+2.0/3*(30-ema1), got[2].Value, 1e-9)

	assert.Equal(t, testBase, got[0].Time)
}

func TestEMAInsufficientHistory(t *testing.T) {
	s := closeSeries(t, 10, 20)
	assert.Empty(t, EMA(s, 3))
	assert.Len(t, EMA(s, 2), 2)
}

func TestEMAConstantSeries(t *testing.T) {
	s := closeSeries(t, 5, 5, 5, 5, 5)
	for _, sample := range EMA(s, 3) {
		assert.InDelta(t, 5.0, sample.Value, 1e-9)
	}
}

func TestSmoothedMA(t *testing.T) {
	s := closeSeries(t, 10, 20, 30)

	got := SmoothedMA(s, 2)
	require.Len(t, got, 3)

	// alpha = 1/n = 0.5.
	assert.InDelta(t, 10.0, got[0].Value, 1e-9)
	assert.InDelta(t, 15.0, got[1].Value, 1e-9)
	assert.InDelta(t, 22.5, got[2].Value, 1e-9)
}

func TestRollingDeviation(t *testing.T) {
	s := closeSeries(t, 1, 2, 3, 6)

	got := RollingDeviation(s, 3)
	require.Len(t, got, 1)

	// Window mean (1+2+3)/3 = 2, current close 6 => (6-2)^2 = 16.
	assert.InDelta(t, 16.0, got[0].Value, 1e-9)
	assert.Equal(t, testBase.Add(3*time.Minute), got[0].Time)
}

func TestRollingDeviationConstantSeries(t *testing.T) {
	s := closeSeries(t, 4, 4, 4, 4, 4)
	for _, sample := range RollingDeviation(s, 3) {
		assert.InDelta(t, 0.0, sample.Value, 1e-9)
	}
}
