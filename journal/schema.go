package journal

// Schema stores every decimal as TEXT so values round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL UNIQUE,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	exit_price TEXT NOT NULL,
	lot_size TEXT NOT NULL,
	trade_date TEXT NOT NULL,
	trade_time TEXT NOT NULL DEFAULT '',
	stop_loss TEXT,
	notes TEXT NOT NULL DEFAULT '',
	pips TEXT NOT NULL,
	profit TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
`
