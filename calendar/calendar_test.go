package calendar

import (
	"testing"

	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tr(symbol, date, profit string) trade.Trade {
	return trade.Restore(trade.Trade{Symbol: symbol, Direction: trade.Long, Date: date}, decimal.Zero, d(profit))
}

var sample = []trade.Trade{
	tr("EUR/USD", "2024-02-01", "10"),
	tr("GBP/USD", "2024-02-01", "-4"),
	tr("EUR/USD", "2024-02-01", "1.5"),
	tr("USD/JPY", "2024-02-29", "-20"),
	tr("EUR/USD", "2024-03-01", "7"),
}

func TestAggregateByDayTradedDaysOnly(t *testing.T) {
	t.Parallel()

	got := AggregateByDay(sample, "")
	assert.Equal(t, []string{"2024-02-01", "2024-02-29", "2024-03-01"}, got.Keys())

	feb1 := got["2024-02-01"]
	assert.Equal(t, 3, feb1.Count)
	assert.True(t, d("7.5").Equal(feb1.Profit))
	assert.True(t, d("-20").Equal(got["2024-02-29"].Profit))
}

func TestAggregateByDayBackfillsMonth(t *testing.T) {
	t.Parallel()

	got := AggregateByDay(sample, "2024-02")
	require.Len(t, got, 29) // leap year

	assert.Equal(t, 3, got["2024-02-01"].Count)
	assert.Equal(t, 0, got["2024-02-15"].Count)
	assert.True(t, got["2024-02-15"].Profit.IsZero())
	assert.Equal(t, 1, got["2024-02-29"].Count)
	_, ok := got["2024-03-01"]
	assert.False(t, ok)

	win, lose := got.WinLoss()
	assert.Equal(t, 1, win)
	assert.Equal(t, 1, lose)
}

func TestAggregateByDayUsesDatePrefix(t *testing.T) {
	t.Parallel()

	// A date carrying a time suffix still lands on its prefix day.
	got := AggregateByDay([]trade.Trade{tr("EUR/USD", "2024-02-01T23:30", "5")}, "")
	assert.Equal(t, []string{"2024-02-01"}, got.Keys())
}

func TestByMonth(t *testing.T) {
	t.Parallel()

	got := ByMonth(sample)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got["2024-02"].Count)
	assert.True(t, d("-12.5").Equal(got["2024-02"].Profit))
	assert.Equal(t, 1, got["2024-03"].Count)
}

func TestMonthDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month string
		n     int
		last  string
	}{
		{"2023-02", 28, "2023-02-28"},
		{"2024-02", 29, "2024-02-29"},
		{"2024-04", 30, "2024-04-30"},
		{"2024-12", 31, "2024-12-31"},
	}
	for _, tt := range tests {
		got := MonthDays(tt.month)
		require.Len(t, got, tt.n, tt.month)
		assert.Equal(t, tt.month+"-01", got[0])
		assert.Equal(t, tt.last, got[len(got)-1])
	}

	assert.Nil(t, MonthDays("2024-13"))
	assert.Nil(t, MonthDays("feb"))
}

func TestTradesOn(t *testing.T) {
	t.Parallel()

	got := TradesOn(sample, "2024-02-01")
	require.Len(t, got, 3)
	assert.Equal(t, "GBP/USD", got[1].Symbol)
	assert.Empty(t, TradesOn(sample, "2024-02-02"))
}
