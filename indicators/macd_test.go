package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backsim/market"
)

func TestMACDLengthAndAlignment(t *testing.T) {
	s := closeSeries(t, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19)

	got := MACD(s, 3, 5, 2)
	require.Len(t, got, s.Len())
	assert.Equal(t, testBase, got[0].Time)

	// First sample: both EMAs are seeded with the first close, so the DIF,
	// DEA and histogram all start at zero.
	assert.InDelta(t, 0.0, got[0].DIF, 1e-9)
	assert.InDelta(t, 0.0, got[0].DEA, 1e-9)
	assert.InDelta(t, 0.0, got[0].Histogram, 1e-9)
}

func TestMACDHistogramRelation(t *testing.T) {
	s := closeSeries(t, 10, 12, 9, 14, 11, 16, 13, 18, 15, 20)

	for _, m := range MACD(s, 3, 6, 4) {
		assert.InDelta(t, 2*(m.DIF-m.DEA), m.Histogram, 1e-9)
	}
}

func TestMACDRisingTrend(t *testing.T) {
	// On a steadily rising series the fast EMA tracks price more closely
	// than the slow EMA, so DIF ends positive.
	s := closeSeries(t, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21)

	got := MACD(s, 3, 8, 4)
	require.NotEmpty(t, got)
	assert.Greater(t, got[len(got)-1].DIF, 0.0)
}

func TestMACDInsufficientHistory(t *testing.T) {
	s := closeSeries(t, 10, 11, 12)
	assert.Empty(t, MACD(s, 3, 5, 2))
	assert.Empty(t, MACD(market.NewSeries("TEST"), 3, 5, 2))
}

func TestMACDConstantSeries(t *testing.T) {
	s := closeSeries(t, 8, 8, 8, 8, 8, 8, 8, 8)
	for _, m := range MACD(s, 2, 4, 3) {
		assert.InDelta(t, 0.0, m.DIF, 1e-9)
		assert.InDelta(t, 0.0, m.Histogram, 1e-9)
	}
}
