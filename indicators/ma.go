package indicators

import (
	"github.com/rustyeddy/backsim/market"
)

// SMA computes the simple moving average of the closes: the arithmetic mean
// of the trailing n values before each index. Samples start at input index
// n, so the output is n shorter than the input.
func SMA(s *market.PriceSeries, n int) []Sample {
	closes := s.Closes()
	if n <= 0 || len(closes) < n+1 {
		return nil
	}

	times := s.Times()
	out := make([]Sample, 0, len(closes)-n)
	for i := n; i < len(closes); i++ {
		sum := 0.0
		for _, v := range closes[i-n : i] {
			sum += v
		}
		out = append(out, Sample{Time: times[i], Value: sum / float64(n)})
	}
	return out
}

// EMA computes the exponential moving average with alpha = 2/(n+1), seeded
// with the first close. Output is full length; the first value equals the
// first close exactly. Empty when fewer than n closes exist.
func EMA(s *market.PriceSeries, n int) []Sample {
	return emaSamples(s, n, 2.0/float64(n+1))
}

// SmoothedMA is the EMA recurrence with the fixed smoothing alpha = 1/n.
func SmoothedMA(s *market.PriceSeries, n int) []Sample {
	return emaSamples(s, n, 1.0/float64(n))
}

func emaSamples(s *market.PriceSeries, n int, alpha float64) []Sample {
	closes := s.Closes()
	if n <= 0 || len(closes) < n {
		return nil
	}

	times := s.Times()
	values := emaValues(closes, alpha)
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{Time: times[i], Value: v}
	}
	return out
}

// emaValues runs the recurrence ema[i] = ema[i-1] + alpha*(v[i] - ema[i-1])
// seeded with values[0].
func emaValues(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1] + alpha*(values[i]-out[i-1])
	}
	return out
}

// RollingDeviation computes, per trailing window of n closes, the squared
// deviation of the current close from the window mean. This is a single
// squared-deviation number per window, not an averaged variance. Alignment
// matches SMA: samples start at input index n.
func RollingDeviation(s *market.PriceSeries, n int) []Sample {
	closes := s.Closes()
	if n <= 0 || len(closes) < n+1 {
		return nil
	}

	times := s.Times()
	out := make([]Sample, 0, len(closes)-n)
	for i := n; i < len(closes); i++ {
		sum := 0.0
		for _, v := range closes[i-n : i] {
			sum += v
		}
		d := closes[i] - sum/float64(n)
		out = append(out, Sample{Time: times[i], Value: d * d})
	}
	return out
}
