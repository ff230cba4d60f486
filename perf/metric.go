package perf

import "strconv"

// Metric is an optional float64. A ratio that cannot be computed (division
// by zero, too few samples) stays invalid rather than being coerced to zero,
// so callers can never mistake "undefined" for "0.0".
type Metric struct {
	Value float64
	Valid bool
}

func Defined(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// String formats the value, or "n/a" when undefined.
func (m Metric) String() string {
	if !m.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(m.Value, 'f', 4, 64)
}
