package market

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptySeries is returned by operations that need at least one price point.
var ErrEmptySeries = errors.New("price series is empty")

// PriceSeries is an append-only, time-ordered OHLCV series for a single
// instrument. Timestamps are strictly increasing; the series is never
// reordered, only appended to.
type PriceSeries struct {
	Symbol string
	points []PricePoint
}

func NewSeries(symbol string) *PriceSeries {
	return &PriceSeries{Symbol: symbol}
}

// Append adds the next point. The point's time must be strictly after the
// last point already in the series.
func (s *PriceSeries) Append(p PricePoint) error {
	if n := len(s.points); n > 0 && !p.Time.After(s.points[n-1].Time) {
		return fmt.Errorf("append %s: time %s is not after %s",
			s.Symbol, p.Time.Format(time.RFC3339), s.points[n-1].Time.Format(time.RFC3339))
	}
	s.points = append(s.points, p)
	return nil
}

func (s *PriceSeries) Len() int {
	return len(s.points)
}

// At returns the point at index i. Callers must keep i in range.
func (s *PriceSeries) At(i int) PricePoint {
	return s.points[i]
}

// Latest returns the most recent point.
func (s *PriceSeries) Latest() (PricePoint, error) {
	if len(s.points) == 0 {
		return PricePoint{}, ErrEmptySeries
	}
	return s.points[len(s.points)-1], nil
}

// CloseAt returns the close price at exactly the given timestamp.
func (s *PriceSeries) CloseAt(t time.Time) (float64, bool) {
	for _, p := range s.points {
		if p.Time.Equal(t) {
			return p.Close, true
		}
		if p.Time.After(t) {
			break
		}
	}
	return 0, false
}

// Closes returns the close price sub-sequence in time order.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}

// Times returns the timestamp sub-sequence in time order.
func (s *PriceSeries) Times() []time.Time {
	out := make([]time.Time, len(s.points))
	for i, p := range s.points {
		out[i] = p.Time
	}
	return out
}

// Range returns the points with start <= time <= end.
func (s *PriceSeries) Range(start, end time.Time) []PricePoint {
	var out []PricePoint
	for _, p := range s.points {
		if p.Time.Before(start) {
			continue
		}
		if p.Time.After(end) {
			break
		}
		out = append(out, p)
	}
	return out
}

// Average returns the mean close over the whole series, 0 when empty.
func (s *PriceSeries) Average() float64 {
	if len(s.points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range s.points {
		sum += p.Close
	}
	return sum / float64(len(s.points))
}

// Points returns the underlying points for read-only iteration.
func (s *PriceSeries) Points() []PricePoint {
	return s.points
}
