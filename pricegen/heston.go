package pricegen

import (
	"math"
	"math/rand"

	"github.com/rustyeddy/backsim/market"
)

func init() {
	Register("heston", func(p Params, rng *rand.Rand) Generator {
		return NewHeston(p, rng)
	})
}

// MinPrice floors the Heston close so jumps and diffusion can never produce
// a non-positive price.
const MinPrice = 0.01

// Heston combines a mean-reverting stochastic variance with a price
// diffusion and Poisson-arriving lognormal jumps.
//
// Variance: v' = max(v + kappa*(theta-v)*dt + sigmaV*sqrt(v)*sqrt(dt)*Z2, 0)
// Price:    close' = close + mu*close*dt + sqrt(v)*close*sqrt(dt)*Z1
//
// Z2 is correlated with Z1 via rho. A jump fires with per-tick probability
// 1 - exp(-lambda*dt) and multiplies the price by exp(jumpMean + jumpVol*Z3).
type Heston struct {
	mu     float64
	kappa  float64
	theta  float64
	sigmaV float64
	rho    float64

	jumpLambda float64
	jumpMean   float64
	jumpVol    float64

	band  float64
	drift float64

	v   float64 // current variance state
	rng *rand.Rand
}

func NewHeston(p Params, rng *rand.Rand) *Heston {
	v0 := p.V0
	if v0 <= 0 {
		v0 = p.Theta
	}
	return &Heston{
		mu:         p.Mu,
		kappa:      p.Kappa,
		theta:      p.Theta,
		sigmaV:     p.SigmaV,
		rho:        p.Rho,
		jumpLambda: p.JumpLambda,
		jumpMean:   p.JumpMean,
		jumpVol:    p.JumpVol,
		band:       p.Band,
		drift:      p.Drift,
		v:          v0,
		rng:        rng,
	}
}

func (g *Heston) Name() string { return "heston" }

// Variance exposes the current variance state, mainly for tests.
func (g *Heston) Variance() float64 { return g.v }

func (g *Heston) GenerateNext(s *market.PriceSeries) (market.PricePoint, error) {
	prev, err := s.Latest()
	if err != nil {
		return market.PricePoint{}, err
	}

	z1 := g.rng.NormFloat64()
	z2 := g.rho*z1 + math.Sqrt(1-g.rho*g.rho)*g.rng.NormFloat64()

	sqrtDT := math.Sqrt(minuteDT)
	g.v = math.Max(g.v+g.kappa*(g.theta-g.v)*minuteDT+g.sigmaV*math.Sqrt(g.v)*sqrtDT*z2, 0)

	close := prev.Close + g.mu*prev.Close*minuteDT + math.Sqrt(g.v)*prev.Close*sqrtDT*z1

	if jumpProb := 1 - math.Exp(-g.jumpLambda*minuteDT); g.rng.Float64() < jumpProb {
		close *= math.Exp(g.jumpMean + g.jumpVol*g.rng.NormFloat64())
	}

	if close < MinPrice {
		close = MinPrice
	}
	close += dayBoundaryDrift(g.rng, s, g.drift)

	return nextBar(g.rng, prev, close, g.band), nil
}
