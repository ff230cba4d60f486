package market

import "time"

// PricePoint represents one OHLCV bar of synthetic market data.
// Points are immutable once created.
type PricePoint struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
