package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the journal database at path and applies
// the schema. ":memory:" gives a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

const tradeColumns = `trade_id, symbol, direction, entry_price, exit_price, lot_size,
	trade_date, trade_time, stop_loss, notes, pips, profit`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (j *SQLite) Insert(ctx context.Context, t trade.Trade) error {
	return j.insert(ctx, j.db, t)
}

// InsertBulk adds every trade in one transaction.
func (j *SQLite) InsertBulk(ctx context.Context, trades []trade.Trade) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := j.insert(ctx, tx, t); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLite) insert(ctx context.Context, db execer, t trade.Trade) error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty trade id", ErrInvalidInput)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Symbol, string(t.Direction), t.EntryPrice, t.ExitPrice, t.LotSize,
		t.Date, t.Time, t.StopLoss, t.Notes, t.Pips(), t.Profit(),
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, t.ID)
	}
	return err
}

func (j *SQLite) Update(ctx context.Context, t trade.Trade) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			symbol = ?, direction = ?, entry_price = ?, exit_price = ?, lot_size = ?,
			trade_date = ?, trade_time = ?, stop_loss = ?, notes = ?, pips = ?, profit = ?
		WHERE trade_id = ?`,
		t.Symbol, string(t.Direction), t.EntryPrice, t.ExitPrice, t.LotSize,
		t.Date, t.Time, t.StopLoss, t.Notes, t.Pips(), t.Profit(), t.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, t.ID)
}

func (j *SQLite) Delete(ctx context.Context, id string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

// Get returns a single trade by ID.
func (j *SQLite) Get(ctx context.Context, id string) (trade.Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, id)

	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

func (j *SQLite) List(ctx context.Context) ([]trade.Trade, error) {
	return j.query(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY seq ASC`)
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func (j *SQLite) query(ctx context.Context, q string, args ...any) ([]trade.Trade, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (trade.Trade, error) {
	var (
		t            trade.Trade
		dir          string
		pips, profit decimal.Decimal
	)
	err := s.Scan(
		&t.ID,
		&t.Symbol,
		&dir,
		&t.EntryPrice,
		&t.ExitPrice,
		&t.LotSize,
		&t.Date,
		&t.Time,
		&t.StopLoss,
		&t.Notes,
		&pips,
		&profit,
	)
	if err != nil {
		return trade.Trade{}, err
	}
	t.Direction = trade.Direction(dir)
	return trade.Restore(t, pips, profit), nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
