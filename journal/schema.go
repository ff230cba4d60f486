package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	strategy TEXT NOT NULL,
	time DATETIME NOT NULL,
	action TEXT NOT NULL,
	price REAL NOT NULL,
	quantity REAL NOT NULL,
	cash_after REAL NOT NULL,
	capital_after REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	capital REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	generator TEXT NOT NULL,
	strategy TEXT NOT NULL,
	sizing TEXT NOT NULL,
	seed INTEGER NOT NULL,
	initial_capital REAL NOT NULL,
	final_capital REAL NOT NULL,
	total_return REAL NOT NULL,
	annualized_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	sharpe_ratio REAL,
	sortino_ratio REAL,
	calmar_ratio REAL,
	volatility REAL,
	trades INTEGER NOT NULL,
	win_rate REAL,
	profit_factor REAL,
	avg_trade_return REAL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
`
