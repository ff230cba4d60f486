package indicators

import (
	"github.com/rustyeddy/backsim/market"
)

// MACD computes the moving average convergence/divergence triple:
//
//	DIF       = EMA(fast) - EMA(slow), elementwise over full-length EMAs
//	DEA       = EMA(signal) of DIF
//	Histogram = 2 * (DIF - DEA)
//
// All three are full length and aligned to the entire input series. The
// result is empty when the series is shorter than any of the periods.
func MACD(s *market.PriceSeries, fast, slow, signal int) []MACDSample {
	closes := s.Closes()
	if len(closes) < fast || len(closes) < slow || len(closes) < signal {
		return nil
	}

	fastEMA := emaValues(closes, 2.0/float64(fast+1))
	slowEMA := emaValues(closes, 2.0/float64(slow+1))

	dif := make([]float64, len(closes))
	for i := range dif {
		dif[i] = fastEMA[i] - slowEMA[i]
	}
	dea := emaValues(dif, 2.0/float64(signal+1))

	times := s.Times()
	out := make([]MACDSample, len(closes))
	for i := range out {
		out[i] = MACDSample{
			Time:      times[i],
			DIF:       dif[i],
			DEA:       dea[i],
			Histogram: 2 * (dif[i] - dea[i]),
		}
	}
	return out
}
