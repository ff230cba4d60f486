// Package strategies turns indicator series into ordered trade signals.
package strategies

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/backsim/market"
)

// Action is the direction of a trade signal.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// Signal is one strategy decision. Signals are immutable and emitted in
// chronological order; Price is the instrument's close at Time, looked up
// from the original price series rather than the indicator stream.
type Signal struct {
	Time     time.Time
	Action   Action
	Price    float64
	Strategy string
}

// Strategy generates the full signal sequence for a completed price series.
// A strategy makes one pass over its indicator samples and may only compare
// a sample to the immediately preceding one.
type Strategy interface {
	Name() string
	GenerateSignals(s *market.PriceSeries) []Signal
}

// Periods configures the indicator windows a strategy derives signals from.
type Periods struct {
	Fast   int `json:"fast" yaml:"fast"`
	Slow   int `json:"slow" yaml:"slow"`
	Signal int `json:"signal" yaml:"signal"`
}

type Factory func(p Periods) Strategy

var registry = make(map[string]Factory)

func Register(name string, f Factory) {
	registry[name] = f
}

// ByName builds the named strategy. Known names: ma-cross, macd-cross.
func ByName(name string, p Periods) (Strategy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (supported: %v)", name, Names())
	}
	return f(p), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// crossover walks paired (fast, slow) values in time order and emits a
// signal at each strict cross. Equality counts as "not yet crossed"; the
// signal fires on the bar where strict inequality first appears. The first
// pair only primes the previous state.
type crossover struct {
	prevFast, prevSlow float64
	primed             bool
}

func (c *crossover) next(fast, slow float64) (Action, bool) {
	if !c.primed {
		c.prevFast, c.prevSlow = fast, slow
		c.primed = true
		return "", false
	}

	var act Action
	var fired bool
	switch {
	case c.prevFast <= c.prevSlow && fast > slow:
		act, fired = Buy, true
	case c.prevFast >= c.prevSlow && fast < slow:
		act, fired = Sell, true
	}

	c.prevFast, c.prevSlow = fast, slow
	return act, fired
}
