// Package pricegen produces synthetic minute-level price paths. Three
// continuous-time models are discretized to one-minute steps: a random walk,
// geometric Brownian motion, and a Heston stochastic-volatility model with
// lognormal jumps.
package pricegen

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rustyeddy/backsim/market"
)

// One minute as a fraction of a trading year (365 * 24 * 60).
const minuteDT = 1.0 / 525600.0

// MinutesPerDay is the number of one-minute bars in a simulated trading day.
// The first bar of each day receives an extra drift perturbation, modeling
// an overnight gap distinct from intraday diffusion.
const MinutesPerDay = 390

// Generator produces the next minute's price point given the series so far.
// The caller appends the returned point. Generators carry run-local mutable
// state (their RNG, the Heston variance), so concurrent runs need one
// instance each.
type Generator interface {
	// Name returns a stable identifier like "random-walk".
	Name() string

	// GenerateNext derives the next point from the latest close. The series
	// must contain at least one point; an empty series is invalid input.
	GenerateNext(s *market.PriceSeries) (market.PricePoint, error)
}

// Params carries every model parameter any generator understands. Each model
// reads only the fields it needs.
type Params struct {
	Volatility float64 `json:"volatility" yaml:"volatility"`
	Drift      float64 `json:"drift" yaml:"drift"`
	Band       float64 `json:"band" yaml:"band"` // high/low band around open/close

	// GBM / Heston diffusion
	Mu    float64 `json:"mu" yaml:"mu"`
	Sigma float64 `json:"sigma" yaml:"sigma"`

	// Heston variance process
	Kappa  float64 `json:"kappa" yaml:"kappa"`
	Theta  float64 `json:"theta" yaml:"theta"`
	SigmaV float64 `json:"sigma_v" yaml:"sigma_v"`
	Rho    float64 `json:"rho" yaml:"rho"`
	V0     float64 `json:"v0" yaml:"v0"`

	// Jump component
	JumpLambda float64 `json:"jump_lambda" yaml:"jump_lambda"`
	JumpMean   float64 `json:"jump_mean" yaml:"jump_mean"`
	JumpVol    float64 `json:"jump_vol" yaml:"jump_vol"`
}

// Factory builds a generator from parameters and a seeded RNG.
type Factory func(p Params, rng *rand.Rand) Generator

var registry = make(map[string]Factory)

func Register(name string, f Factory) {
	registry[name] = f
}

// New builds the named generator. Known names: random-walk, gbm, heston.
func New(name string, p Params, rng *rand.Rand) (Generator, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (supported: %v)", name, Names())
	}
	return f(p, rng), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nextBar fills in the shared OHLCV shape around a new close: the bar opens
// at the previous close, high/low pad max/min(open, close) by a uniform draw
// from the band, and volume is uniform in [100, 1000].
func nextBar(rng *rand.Rand, prev market.PricePoint, close, band float64) market.PricePoint {
	open := prev.Close
	hi := open
	lo := close
	if close > open {
		hi, lo = close, open
	}
	return market.PricePoint{
		Time:   prev.Time.Add(time.Minute),
		Open:   open,
		High:   hi + rng.Float64()*band,
		Low:    lo - rng.Float64()*band,
		Close:  close,
		Volume: float64(100 + rng.Intn(901)),
	}
}

// dayBoundaryDrift returns the overnight-gap perturbation, drawn only when
// the point generated now is the first bar of a simulated day. The check is
// against the current point count, so it fires at counts 0, 390, 780, ...
func dayBoundaryDrift(rng *rand.Rand, s *market.PriceSeries, drift float64) float64 {
	if s.Len()%MinutesPerDay != 0 {
		return 0
	}
	return uniform(rng, -drift, drift)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
