// Package backtest wires the pipeline together: generate a price series,
// detect signals per strategy, execute them against a fresh simulated
// account, and score the resulting equity curve. Stages run strictly in
// sequence; every run owns its generator, executor, and RNG, so parameter
// sweeps can run runs concurrently by giving each its own Options.
package backtest

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/perf"
	"github.com/rustyeddy/backsim/pkg/id"
	"github.com/rustyeddy/backsim/pricegen"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
)

// Generate seeds a series with one initial bar and appends minutes generated
// points.
func Generate(gen pricegen.Generator, symbol string, start time.Time, initialPrice float64, minutes int) (*market.PriceSeries, error) {
	series := market.NewSeries(symbol)
	seed := market.PricePoint{
		Time:   start,
		Open:   initialPrice,
		High:   initialPrice,
		Low:    initialPrice,
		Close:  initialPrice,
		Volume: 1000,
	}
	if err := series.Append(seed); err != nil {
		return nil, err
	}

	for i := 0; i < minutes; i++ {
		p, err := gen.GenerateNext(series)
		if err != nil {
			return nil, fmt.Errorf("generate minute %d: %w", i, err)
		}
		if err := series.Append(p); err != nil {
			return nil, fmt.Errorf("generate minute %d: %w", i, err)
		}
	}
	return series, nil
}

// Runner holds a completed price series and the strategies to evaluate
// against it.
type Runner struct {
	series     *market.PriceSeries
	strategies []strategies.Strategy
}

func NewRunner(series *market.PriceSeries) *Runner {
	return &Runner{series: series}
}

func (r *Runner) AddStrategy(s strategies.Strategy) {
	r.strategies = append(r.strategies, s)
}

// Run generates the signal sequence for every registered strategy, keyed by
// strategy name. The series must be non-empty.
func (r *Runner) Run() (map[string][]strategies.Signal, error) {
	if r.series.Len() == 0 {
		return nil, market.ErrEmptySeries
	}
	out := make(map[string][]strategies.Signal, len(r.strategies))
	for _, s := range r.strategies {
		out[s.Name()] = s.GenerateSignals(r.series)
	}
	return out, nil
}

// Execute replays signals in order against a fresh executor and returns it
// with its ledger, equity curve, and trade returns populated.
func Execute(signals []strategies.Signal, sizing sim.Sizing, initialCapital float64, log *slog.Logger) *sim.Executor {
	x := sim.NewExecutor(initialCapital, sizing, log)
	for _, sig := range signals {
		x.HandleSignal(sig)
	}
	return x
}

// Analyze scores an equity curve and its per-trade returns.
func Analyze(equity, tradeReturns []float64, riskFreeRate float64, periodsPerYear int) (perf.Report, error) {
	return perf.NewAnalyzer(riskFreeRate, periodsPerYear).Analyze(equity, tradeReturns)
}

// Options configures one complete pipeline invocation.
type Options struct {
	Generator      pricegen.Generator
	Strategies     []strategies.Strategy
	Symbol         string
	Start          time.Time
	InitialPrice   float64
	Minutes        int
	InitialCapital float64
	Sizing         sim.Sizing
	RiskFreeRate   float64
	PeriodsPerYear int
	Seed           int64
	Journal        journal.Journal
	Logger         *slog.Logger
}

// StrategyResult is the scored outcome of one strategy over the shared
// series.
type StrategyResult struct {
	RunID    string
	Strategy string
	Signals  []strategies.Signal
	Trades   []sim.TradeRecord
	Equity   []float64
	Report   perf.Report
}

// Run executes the full pipeline: one generated series, then per strategy a
// fresh executor, an analysis pass, and journal rows.
func Run(opts Options) (*market.PriceSeries, []StrategyResult, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	jnl := opts.Journal
	if jnl == nil {
		jnl = journal.Nop{}
	}

	series, err := Generate(opts.Generator, opts.Symbol, opts.Start, opts.InitialPrice, opts.Minutes)
	if err != nil {
		return nil, nil, fmt.Errorf("generate series: %w", err)
	}
	log.Info("series generated",
		"generator", opts.Generator.Name(),
		"symbol", opts.Symbol,
		"points", series.Len(),
	)

	runner := NewRunner(series)
	for _, s := range opts.Strategies {
		runner.AddStrategy(s)
	}
	signalsByStrategy, err := runner.Run()
	if err != nil {
		return nil, nil, err
	}

	results := make([]StrategyResult, 0, len(opts.Strategies))
	for _, strat := range opts.Strategies {
		name := strat.Name()
		signals := signalsByStrategy[name]
		runID := id.New()

		x := Execute(signals, opts.Sizing, opts.InitialCapital, log.With("strategy", name, "run_id", runID))

		report, err := Analyze(x.EquityCurve(), x.TradeReturns(), opts.RiskFreeRate, opts.PeriodsPerYear)
		if err != nil {
			return nil, nil, fmt.Errorf("analyze %s: %w", name, err)
		}
		log.Info("run scored",
			"strategy", name,
			"run_id", runID,
			"signals", len(signals),
			"trades", len(x.Trades()),
			"total_return", report.TotalReturn,
		)

		if err := journalRun(jnl, runID, opts, name, x, report); err != nil {
			return nil, nil, fmt.Errorf("journal %s: %w", name, err)
		}

		results = append(results, StrategyResult{
			RunID:    runID,
			Strategy: name,
			Signals:  signals,
			Trades:   x.Trades(),
			Equity:   x.EquityCurve(),
			Report:   report,
		})
	}
	return series, results, nil
}

func journalRun(jnl journal.Journal, runID string, opts Options, strategy string, x *sim.Executor, report perf.Report) error {
	for _, t := range x.Trades() {
		if err := jnl.RecordTrade(journal.TradeRow{
			RunID:        runID,
			TradeID:      t.ID,
			Strategy:     strategy,
			Time:         t.Time,
			Action:       string(t.Action),
			Price:        t.Price,
			Quantity:     t.Quantity,
			CashAfter:    t.CashAfter,
			CapitalAfter: t.CapitalAfter,
		}); err != nil {
			return err
		}
	}
	for i, capital := range x.EquityCurve() {
		if err := jnl.RecordEquity(journal.EquityPoint{RunID: runID, Seq: i, Capital: capital}); err != nil {
			return err
		}
	}
	return jnl.RecordRun(journal.RunSummary{
		RunID:     runID,
		Created:   time.Now().UTC(),
		Generator: opts.Generator.Name(),
		Strategy:  strategy,
		Sizing:    opts.Sizing.Name(),
		Seed:      opts.Seed,
		Report:    report,
	})
}
