package market

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedTimeframe is returned when an aggregation target is not one
// of the recognized intervals.
var ErrUnsupportedTimeframe = errors.New("unsupported timeframe")

// TimeframeMinutes maps supported aggregation targets to their bar length.
var TimeframeMinutes = map[string]int{
	"5min":  5,
	"15min": 15,
	"30min": 30,
	"1h":    60,
	"4h":    240,
	"1d":    1440,
}

// Aggregate re-buckets a minute-level series into the given higher
// timeframe. Each bucket becomes one bar: open of the first point, close of
// the last, max high, min low, summed volume. Bucket times are normalized
// down to the interval boundary.
func Aggregate(s *PriceSeries, timeframe string) (*PriceSeries, error) {
	mins, ok := TimeframeMinutes[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, timeframe)
	}

	out := NewSeries(s.Symbol)
	if s.Len() == 0 {
		return out, nil
	}

	interval := time.Duration(mins) * time.Minute
	bucketStart := normalizeTime(s.At(0).Time, mins)
	var bucket []PricePoint

	for _, p := range s.Points() {
		bucketEnd := bucketStart.Add(interval)
		if p.Time.Before(bucketEnd) {
			bucket = append(bucket, p)
			continue
		}

		if len(bucket) > 0 {
			if err := out.Append(aggregateBucket(bucket, bucketStart)); err != nil {
				return nil, err
			}
		}
		for !p.Time.Before(bucketEnd) {
			bucketStart = bucketEnd
			bucketEnd = bucketStart.Add(interval)
		}
		bucket = bucket[:0]
		bucket = append(bucket, p)
	}

	if len(bucket) > 0 {
		if err := out.Append(aggregateBucket(bucket, bucketStart)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// normalizeTime rounds t down to the nearest interval boundary within its day.
func normalizeTime(t time.Time, intervalMinutes int) time.Time {
	minutes := t.Hour()*60 + t.Minute()
	normalized := (minutes / intervalMinutes) * intervalMinutes
	return time.Date(t.Year(), t.Month(), t.Day(),
		normalized/60, normalized%60, 0, 0, t.Location())
}

func aggregateBucket(points []PricePoint, start time.Time) PricePoint {
	bar := PricePoint{
		Time:  start,
		Open:  points[0].Open,
		High:  points[0].High,
		Low:   points[0].Low,
		Close: points[len(points)-1].Close,
	}
	for _, p := range points {
		if p.High > bar.High {
			bar.High = p.High
		}
		if p.Low < bar.Low {
			bar.Low = p.Low
		}
		bar.Volume += p.Volume
	}
	return bar
}
