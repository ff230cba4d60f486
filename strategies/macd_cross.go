package strategies

import (
	"fmt"

	"github.com/rustyeddy/backsim/indicators"
	"github.com/rustyeddy/backsim/market"
)

func init() {
	Register("macd-cross", func(p Periods) Strategy {
		return NewMACDCross(p.Fast, p.Slow, p.Signal)
	})
}

// MACDCross applies the crossover rule to the MACD's DIF and DEA lines
// instead of two moving averages.
type MACDCross struct {
	fast   int
	slow   int
	signal int
}

func NewMACDCross(fast, slow, signal int) *MACDCross {
	return &MACDCross{fast: fast, slow: slow, signal: signal}
}

func (m *MACDCross) Name() string {
	return fmt.Sprintf("macd-cross(%d,%d,%d)", m.fast, m.slow, m.signal)
}

func (m *MACDCross) GenerateSignals(s *market.PriceSeries) []Signal {
	samples := indicators.MACD(s, m.fast, m.slow, m.signal)

	var signals []Signal
	var cross crossover

	for _, sm := range samples {
		act, fired := cross.next(sm.DIF, sm.DEA)
		if !fired {
			continue
		}
		price, ok := s.CloseAt(sm.Time)
		if !ok {
			continue
		}
		signals = append(signals, Signal{
			Time:     sm.Time,
			Action:   act,
			Price:    price,
			Strategy: m.Name(),
		})
	}
	return signals
}
