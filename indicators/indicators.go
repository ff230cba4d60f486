// Package indicators computes derived numeric series from a price series.
// Every function is pure: it reads the close sub-sequence of the input and
// returns samples time-aligned to the subset of timestamps it can compute
// for. A window longer than the available history yields an empty result,
// not an error; callers treat missing history as "wait for more data".
package indicators

import "time"

// Sample is one indicator value at a point in time.
type Sample struct {
	Time  time.Time
	Value float64
}

// MACDSample carries the MACD triple at a point in time: DIF (fast EMA minus
// slow EMA), DEA (signal-period EMA of DIF) and the histogram
// 2 * (DIF - DEA).
type MACDSample struct {
	Time      time.Time
	DIF       float64
	DEA       float64
	Histogram float64
}
