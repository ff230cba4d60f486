package pricegen

import (
	"math"
	"math/rand"

	"github.com/rustyeddy/backsim/market"
)

func init() {
	Register("gbm", func(p Params, rng *rand.Rand) Generator {
		return NewGBM(p.Mu, p.Sigma, p.Band, p.Drift, rng)
	})
}

// GBM evolves the close as a discretized lognormal step
//
//	close' = close * exp((mu - sigma^2/2)*dt + sigma*sqrt(dt)*Z)
//
// with dt one minute as a fraction of a year. The day-boundary drift
// perturbation is added after the diffusion step, matching the random walk's
// overnight-gap convention.
type GBM struct {
	mu    float64
	sigma float64
	band  float64
	drift float64
	rng   *rand.Rand
}

func NewGBM(mu, sigma, band, drift float64, rng *rand.Rand) *GBM {
	return &GBM{mu: mu, sigma: sigma, band: band, drift: drift, rng: rng}
}

func (g *GBM) Name() string { return "gbm" }

func (g *GBM) GenerateNext(s *market.PriceSeries) (market.PricePoint, error) {
	prev, err := s.Latest()
	if err != nil {
		return market.PricePoint{}, err
	}

	z := g.rng.NormFloat64()
	step := (g.mu-g.sigma*g.sigma/2)*minuteDT + g.sigma*math.Sqrt(minuteDT)*z
	close := prev.Close * math.Exp(step)
	close += dayBoundaryDrift(g.rng, s, g.drift)

	return nextBar(g.rng, prev, close, g.band), nil
}
