package strategies

import (
	"fmt"

	"github.com/rustyeddy/backsim/indicators"
	"github.com/rustyeddy/backsim/market"
)

func init() {
	Register("ma-cross", func(p Periods) Strategy {
		return NewDualMA(p.Fast, p.Slow)
	})
}

// DualMA signals on crossovers between a fast and a slow simple moving
// average. Samples from the two streams are paired by matching timestamp;
// the slower average starts later, so only the overlap is considered.
type DualMA struct {
	fastPeriod int
	slowPeriod int
}

func NewDualMA(fast, slow int) *DualMA {
	return &DualMA{fastPeriod: fast, slowPeriod: slow}
}

func (d *DualMA) Name() string {
	return fmt.Sprintf("ma-cross(%d,%d)", d.fastPeriod, d.slowPeriod)
}

func (d *DualMA) GenerateSignals(s *market.PriceSeries) []Signal {
	fast := indicators.SMA(s, d.fastPeriod)
	slow := indicators.SMA(s, d.slowPeriod)

	var signals []Signal
	var cross crossover

	i := 0
	for _, sl := range slow {
		for i < len(fast) && fast[i].Time.Before(sl.Time) {
			i++
		}
		if i >= len(fast) {
			break
		}
		if !fast[i].Time.Equal(sl.Time) {
			continue
		}

		act, fired := cross.next(fast[i].Value, sl.Value)
		if !fired {
			continue
		}
		price, ok := s.CloseAt(sl.Time)
		if !ok {
			continue
		}
		signals = append(signals, Signal{
			Time:     sl.Time,
			Action:   act,
			Price:    price,
			Strategy: d.Name(),
		})
	}
	return signals
}
