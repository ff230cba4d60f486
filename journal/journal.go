// Package journal persists backtest output: the trade ledger, the equity
// curve, and a per-run summary row. Implementations exist for CSV files and
// SQLite; Nop discards everything for runs that only need the in-memory
// results.
package journal

import (
	"time"

	"github.com/rustyeddy/backsim/perf"
)

// TradeRow mirrors one executed trade.
type TradeRow struct {
	RunID        string
	TradeID      string
	Strategy     string
	Time         time.Time
	Action       string
	Price        float64
	Quantity     float64
	CashAfter    float64
	CapitalAfter float64
}

// EquityPoint is one capital value on a run's equity curve. Seq 0 is the
// initial capital; each accepted trade appends the next point.
type EquityPoint struct {
	RunID   string
	Seq     int
	Capital float64
}

// RunSummary records how a run was set up and how it scored.
type RunSummary struct {
	RunID     string
	Created   time.Time
	Generator string
	Strategy  string
	Sizing    string
	Seed      int64
	Report    perf.Report
}

type Journal interface {
	RecordTrade(TradeRow) error
	RecordEquity(EquityPoint) error
	RecordRun(RunSummary) error
	Close() error
}

// Nop is a Journal that discards all records.
type Nop struct{}

func (Nop) RecordTrade(TradeRow) error     { return nil }
func (Nop) RecordEquity(EquityPoint) error { return nil }
func (Nop) RecordRun(RunSummary) error     { return nil }
func (Nop) Close() error                   { return nil }
