// Package perf scores a completed run: it turns an equity curve and the
// per-trade returns into standard risk-adjusted performance metrics.
package perf

import (
	"errors"
	"math"
)

// ErrEmptyEquityCurve is returned when there is nothing to analyze.
var ErrEmptyEquityCurve = errors.New("equity curve is empty")

// Analyzer computes a Report from an equity curve. PeriodsPerYear converts
// per-period statistics to annualized figures (252 for daily curves).
type Analyzer struct {
	RiskFreeRate   float64 // annual risk-free rate, e.g. 0.02
	PeriodsPerYear int
}

func NewAnalyzer(riskFreeRate float64, periodsPerYear int) *Analyzer {
	if periodsPerYear <= 0 {
		periodsPerYear = 252
	}
	return &Analyzer{RiskFreeRate: riskFreeRate, PeriodsPerYear: periodsPerYear}
}

// Report holds the computed metrics, ordered overall -> risk-adjusted ->
// risk -> trade statistics. Metrics that cannot be computed are left
// invalid.
type Report struct {
	InitialCapital   float64
	FinalCapital     float64
	TotalReturn      float64
	AnnualizedReturn float64

	SharpeRatio  Metric
	SortinoRatio Metric
	CalmarRatio  Metric

	MaxDrawdown float64
	Volatility  Metric

	TotalTrades        int
	WinRate            Metric
	ProfitFactor       Metric
	AverageTradeReturn Metric
}

// Analyze computes the full report. The equity curve must hold at least one
// value; tradeReturns may be empty, in which case the trade statistics stay
// undefined.
func (a *Analyzer) Analyze(equity []float64, tradeReturns []float64) (Report, error) {
	if len(equity) == 0 {
		return Report{}, ErrEmptyEquityCurve
	}

	initial := equity[0]
	final := equity[len(equity)-1]

	r := Report{
		InitialCapital: initial,
		FinalCapital:   final,
		TotalReturn:    (final - initial) / initial,
	}

	// CAGR over the elapsed period count.
	numPeriods := len(equity) - 1
	if numPeriods > 0 {
		r.AnnualizedReturn = math.Pow(final/initial, float64(a.PeriodsPerYear)/float64(numPeriods)) - 1
	}

	returns := periodReturns(equity)
	perPeriodRF := a.RiskFreeRate / float64(a.PeriodsPerYear)
	annualize := math.Sqrt(float64(a.PeriodsPerYear))

	if len(returns) > 1 {
		std := stdev(returns)
		r.Volatility = Defined(std * annualize)

		if std > 0 {
			excess := mean(returns) - perPeriodRF
			r.SharpeRatio = Defined(excess / std * annualize)
		}

		var downside []float64
		for _, ret := range returns {
			if ret < perPeriodRF {
				downside = append(downside, ret-perPeriodRF)
			}
		}
		if len(downside) > 1 {
			if dstd := stdev(downside); dstd > 0 {
				r.SortinoRatio = Defined((mean(returns) - perPeriodRF) / dstd * annualize)
			}
		}
	}

	r.MaxDrawdown = maxDrawdown(equity)
	if r.MaxDrawdown > 0 {
		r.CalmarRatio = Defined(r.AnnualizedReturn / r.MaxDrawdown)
	}

	if len(tradeReturns) > 0 {
		r.TotalTrades = len(tradeReturns)

		wins := 0
		grossProfit, grossLoss := 0.0, 0.0
		for _, t := range tradeReturns {
			if t > 0 {
				wins++
				grossProfit += t
			} else if t < 0 {
				grossLoss += -t
			}
		}
		r.WinRate = Defined(float64(wins) / float64(len(tradeReturns)))
		if grossLoss > 0 {
			r.ProfitFactor = Defined(grossProfit / grossLoss)
		}
		r.AverageTradeReturn = Defined(mean(tradeReturns))
	}

	return r, nil
}

// periodReturns is the simple percentage change between consecutive curve
// values, with a zero-previous guard.
func periodReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1]
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (equity[i]-prev)/prev)
	}
	return out
}

// maxDrawdown is the largest fractional decline from a running peak.
func maxDrawdown(equity []float64) float64 {
	peak := equity[0]
	maxDD := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev is the sample standard deviation (n-1 denominator).
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
