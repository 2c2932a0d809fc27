package backtest

import (
	"time"

	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tr(id, symbol, date, tm, profit string) trade.Trade {
	return trade.Restore(trade.Trade{
		ID:        id,
		Symbol:    symbol,
		Direction: trade.Long,
		Date:      date,
		Time:      tm,
	}, decimal.Zero, d(profit))
}

// seq builds EUR/USD trades on consecutive days from a profit list.
func seq(profits ...string) []trade.Trade {
	out := make([]trade.Trade, len(profits))
	for i, p := range profits {
		date := dayN(i)
		out[i] = tr(date, "EUR/USD", date, "", p)
	}
	return out
}

func dayN(i int) string {
	return firstDay.AddDate(0, 0, i).Format(trade.DateLayout)
}

var firstDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
