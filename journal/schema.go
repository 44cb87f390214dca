package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	broker TEXT NOT NULL DEFAULT '',
	currency TEXT NOT NULL,
	initial_balance REAL NOT NULL,
	status TEXT NOT NULL DEFAULT 'ACTIVE',
	created_at DATETIME NOT NULL,
	challenge_type TEXT NOT NULL DEFAULT '',
	phase TEXT NOT NULL DEFAULT '',
	challenge_cost REAL,
	max_drawdown_limit REAL,
	daily_drawdown_limit REAL,
	profit_split_percent REAL,
	phase1_profit_target REAL,
	phase2_profit_target REAL,
	funded_profit_target REAL,
	phase1_profit_target_percent REAL,
	phase2_profit_target_percent REAL,
	funded_profit_target_percent REAL,
	current_phase_pnl REAL
);

CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL REFERENCES accounts(id),
	pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	open_datetime TEXT NOT NULL,
	close_datetime TEXT NOT NULL DEFAULT '',
	entry_price REAL NOT NULL,
	exit_price REAL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	total_lots REAL NOT NULL,
	total_pnl REAL NOT NULL,
	commission REAL,
	swap REAL,
	risk_reward REAL NOT NULL DEFAULT 0,
	screenshot_url TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);

CREATE TABLE IF NOT EXISTS partial_closes (
	id TEXT PRIMARY KEY,
	trade_id TEXT NOT NULL REFERENCES trades(id),
	close_number INTEGER NOT NULL,
	close_datetime TEXT NOT NULL,
	exit_price REAL NOT NULL,
	lots_closed REAL NOT NULL,
	pnl REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_partial_closes_trade ON partial_closes(trade_id);

CREATE TABLE IF NOT EXISTS trading_alerts (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	type TEXT NOT NULL,
	severity TEXT NOT NULL,
	message TEXT NOT NULL,
	current_value REAL NOT NULL,
	limit_value REAL NOT NULL,
	percentage REAL NOT NULL,
	is_read INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_alerts_created ON trading_alerts(created_at);

CREATE TABLE IF NOT EXISTS alert_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	max_drawdown_warning REAL NOT NULL,
	max_drawdown_danger REAL NOT NULL,
	max_drawdown_critical REAL NOT NULL,
	daily_drawdown_warning REAL NOT NULL,
	daily_drawdown_danger REAL NOT NULL,
	daily_drawdown_critical REAL NOT NULL,
	profit_target_info REAL NOT NULL,
	enable_sounds INTEGER NOT NULL,
	enable_notifications INTEGER NOT NULL
);
`
