package journal

// rr is stored as TEXT so the infinite sentinel survives the round trip.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	entry_date TEXT NOT NULL,
	ticker TEXT NOT NULL,
	setup TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	target REAL NOT NULL,
	size REAL NOT NULL,
	exit_date TEXT,
	exit_price REAL,
	pl REAL,
	pl_percent REAL,
	rr TEXT NOT NULL,
	holding_days INTEGER,
	notes TEXT NOT NULL,
	screenshot TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS balance_history (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	balance REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_balance_history_date ON balance_history(date);
`
