package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/backsim/perf"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRow) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, strategy, time, action, price, quantity, cash_after, capital_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Strategy, t.Time, t.Action,
		t.Price, t.Quantity, t.CashAfter, t.CapitalAfter,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityPoint) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, seq, capital) VALUES (?, ?, ?)`,
		e.RunID, e.Seq, e.Capital,
	)
	return err
}

func (j *SQLite) RecordRun(r RunSummary) error {
	rep := r.Report
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, generator, strategy, sizing, seed,
		 initial_capital, final_capital, total_return, annualized_return, max_drawdown,
		 sharpe_ratio, sortino_ratio, calmar_ratio, volatility,
		 trades, win_rate, profit_factor, avg_trade_return)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Generator, r.Strategy, r.Sizing, r.Seed,
		rep.InitialCapital, rep.FinalCapital, rep.TotalReturn, rep.AnnualizedReturn, rep.MaxDrawdown,
		nullable(rep.SharpeRatio), nullable(rep.SortinoRatio), nullable(rep.CalmarRatio), nullable(rep.Volatility),
		rep.TotalTrades, nullable(rep.WinRate), nullable(rep.ProfitFactor), nullable(rep.AverageTradeReturn),
	)
	return err
}

// ListRuns returns the persisted run summaries, newest first. Metrics stored
// as NULL come back invalid, matching how the analyzer produced them.
func (j *SQLite) ListRuns() ([]RunSummary, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, generator, strategy, sizing, seed,
		       initial_capital, final_capital, total_return, annualized_return, max_drawdown,
		       sharpe_ratio, sortino_ratio, calmar_ratio, volatility,
		       trades, win_rate, profit_factor, avg_trade_return
		FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var sharpe, sortino, calmar, vol, winRate, pf, avg sql.NullFloat64
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Generator, &r.Strategy, &r.Sizing, &r.Seed,
			&r.Report.InitialCapital, &r.Report.FinalCapital, &r.Report.TotalReturn,
			&r.Report.AnnualizedReturn, &r.Report.MaxDrawdown,
			&sharpe, &sortino, &calmar, &vol,
			&r.Report.TotalTrades, &winRate, &pf, &avg,
		); err != nil {
			return nil, err
		}
		r.Report.SharpeRatio = fromNull(sharpe)
		r.Report.SortinoRatio = fromNull(sortino)
		r.Report.CalmarRatio = fromNull(calmar)
		r.Report.Volatility = fromNull(vol)
		r.Report.WinRate = fromNull(winRate)
		r.Report.ProfitFactor = fromNull(pf)
		r.Report.AverageTradeReturn = fromNull(avg)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// nullable maps an undefined metric to SQL NULL, keeping "no value" distinct
// from zero in storage too.
func nullable(m perf.Metric) any {
	if !m.Valid {
		return nil
	}
	return m.Value
}

func fromNull(v sql.NullFloat64) perf.Metric {
	if !v.Valid {
		return perf.Metric{}
	}
	return perf.Defined(v.Float64)
}
