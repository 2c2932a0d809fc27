package journal

import (
	"context"

	"github.com/rustyeddy/tradelog/trade"
)

// ListBetween returns trades dated within [start, end], both YYYY-MM-DD
// and inclusive. An empty bound is open. Results are in insertion order.
func (j *SQLite) ListBetween(ctx context.Context, start, end string) ([]trade.Trade, error) {
	return j.query(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE (? = '' OR trade_date >= ?) AND (? = '' OR trade_date <= ?)
		ORDER BY seq ASC`, start, start, end, end)
}

// ListByDay returns trades whose date starts with day.
func (j *SQLite) ListByDay(ctx context.Context, day string) ([]trade.Trade, error) {
	return j.query(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE substr(trade_date, 1, 10) = ?
		ORDER BY seq ASC`, day)
}

// Symbols returns the distinct symbols in the journal, sorted.
func (j *SQLite) Symbols(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM trades ORDER BY symbol ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
