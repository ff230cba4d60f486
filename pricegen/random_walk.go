package pricegen

import (
	"math/rand"

	"github.com/rustyeddy/backsim/market"
)

func init() {
	Register("random-walk", func(p Params, rng *rand.Rand) Generator {
		return NewRandomWalk(p.Volatility, p.Drift, rng)
	})
}

// RandomWalk evolves the close with an additive uniform step in
// [-volatility, volatility]. The volatility also doubles as the high/low
// band around open and close.
type RandomWalk struct {
	volatility float64
	drift      float64
	rng        *rand.Rand
}

func NewRandomWalk(volatility, drift float64, rng *rand.Rand) *RandomWalk {
	return &RandomWalk{volatility: volatility, drift: drift, rng: rng}
}

func (g *RandomWalk) Name() string { return "random-walk" }

func (g *RandomWalk) GenerateNext(s *market.PriceSeries) (market.PricePoint, error) {
	prev, err := s.Latest()
	if err != nil {
		return market.PricePoint{}, err
	}

	close := prev.Close + uniform(g.rng, -g.volatility, g.volatility)
	close += dayBoundaryDrift(g.rng, s, g.drift)

	return nextBar(g.rng, prev, close, g.volatility), nil
}
