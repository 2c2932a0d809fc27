package journal

import (
	"path/filepath"
	"testing"

	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/pnl"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func eurusd(id, date, tm, entry, exit string) trade.Trade {
	t := trade.Trade{
		ID:         id,
		Symbol:     "EUR/USD",
		Direction:  trade.Long,
		EntryPrice: d(entry),
		ExitPrice:  d(exit),
		LotSize:    d("1"),
		Date:       date,
		Time:       tm,
	}
	return t.Priced(pnl.NewCalculator(market.DefaultReference()))
}

func input(symbol, dir, entry, exit, lots, date string) trade.Input {
	return trade.Input{
		Symbol:     symbol,
		Direction:  dir,
		EntryPrice: trade.Field(entry),
		ExitPrice:  trade.Field(exit),
		LotSize:    trade.Field(lots),
		Date:       date,
	}
}

func seqIDs(ids ...string) func() string {
	i := 0
	return func() string {
		s := ids[i]
		i++
		return s
	}
}
