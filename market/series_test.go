package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBase = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func buildSeries(t *testing.T, closes ...float64) *PriceSeries {
	t.Helper()
	s := NewSeries("TEST")
	for i, c := range closes {
		err := s.Append(PricePoint{
			Time:   testBase.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 500,
		})
		require.NoError(t, err)
	}
	return s
}

func TestAppendOrdering(t *testing.T) {
	s := NewSeries("TEST")

	err := s.Append(PricePoint{Time: testBase, Close: 100})
	assert.NoError(t, err)

	// Same timestamp is rejected.
	err = s.Append(PricePoint{Time: testBase, Close: 101})
	assert.Error(t, err)

	// Earlier timestamp is rejected.
	err = s.Append(PricePoint{Time: testBase.Add(-time.Minute), Close: 101})
	assert.Error(t, err)

	// Strictly later is fine.
	err = s.Append(PricePoint{Time: testBase.Add(time.Minute), Close: 101})
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestLatest(t *testing.T) {
	s := NewSeries("TEST")
	_, err := s.Latest()
	assert.ErrorIs(t, err, ErrEmptySeries)

	s = buildSeries(t, 100, 101, 102)
	p, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, 102.0, p.Close)
}

func TestCloseAt(t *testing.T) {
	s := buildSeries(t, 100, 101, 102)

	c, ok := s.CloseAt(testBase.Add(time.Minute))
	assert.True(t, ok)
	assert.Equal(t, 101.0, c)

	_, ok = s.CloseAt(testBase.Add(30 * time.Second))
	assert.False(t, ok)

	_, ok = s.CloseAt(testBase.Add(time.Hour))
	assert.False(t, ok)
}

func TestClosesAndTimes(t *testing.T) {
	s := buildSeries(t, 100, 101, 102)

	assert.Equal(t, []float64{100, 101, 102}, s.Closes())

	times := s.Times()
	require.Len(t, times, 3)
	assert.Equal(t, testBase, times[0])
	assert.Equal(t, testBase.Add(2*time.Minute), times[2])
}

func TestRange(t *testing.T) {
	s := buildSeries(t, 100, 101, 102, 103, 104)

	got := s.Range(testBase.Add(time.Minute), testBase.Add(3*time.Minute))
	require.Len(t, got, 3)
	assert.Equal(t, 101.0, got[0].Close)
	assert.Equal(t, 103.0, got[2].Close)

	assert.Empty(t, s.Range(testBase.Add(time.Hour), testBase.Add(2*time.Hour)))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, NewSeries("TEST").Average())

	s := buildSeries(t, 100, 102, 104)
	assert.InDelta(t, 102.0, s.Average(), 1e-9)
}
