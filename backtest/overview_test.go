package backtest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rustyeddy/tradelog/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	t.Parallel()

	// Mon, Mon (untimed), Sun, and a Wednesday in the previous month.
	trades := []trade.Trade{
		tr("1", "EUR/USD", "2024-03-04", "09:15", "100"),
		tr("2", "GBP/USD", "2024-03-04", "", "-30"),
		tr("3", "EUR/USD", "2024-03-10", "14:00", "-50"),
		tr("4", "USD/JPY", "2024-02-28", "09:40", "20"),
	}
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	o := Overview(trades, now)

	assert.Equal(t, 4, o.Result.TotalTrades)
	assert.Equal(t, "2024-03", o.Month)
	require.Len(t, o.Calendar, 31)
	assert.Equal(t, 2, o.Calendar["2024-03-04"].Count)
	assert.True(t, d("70").Equal(o.Calendar["2024-03-04"].Profit))
	assert.Equal(t, 1, o.WinningDays)
	assert.Equal(t, 1, o.LosingDays)

	require.Len(t, o.ProfitBySymbol, 3)
	assert.Equal(t, "EUR/USD", o.ProfitBySymbol[0].Symbol)
	assert.True(t, d("50").Equal(o.ProfitBySymbol[0].Profit))
	assert.Equal(t, "GBP/USD", o.ProfitBySymbol[1].Symbol)

	require.Len(t, o.ProfitByWeekday, 7)
	assert.Equal(t, "Monday", o.ProfitByWeekday[0].Weekday)
	assert.True(t, d("70").Equal(o.ProfitByWeekday[0].Profit))
	assert.Equal(t, "Wednesday", o.ProfitByWeekday[2].Weekday)
	assert.True(t, d("20").Equal(o.ProfitByWeekday[2].Profit))
	assert.Equal(t, "Sunday", o.ProfitByWeekday[6].Weekday)
	assert.True(t, d("-50").Equal(o.ProfitByWeekday[6].Profit))
	assert.True(t, o.ProfitByWeekday[1].Profit.IsZero())

	// The untimed GBP/USD trade is left out of the hourly view.
	require.Len(t, o.ProfitByHour, 2)
	assert.Equal(t, "09:00", o.ProfitByHour[0].Hour)
	assert.True(t, d("120").Equal(o.ProfitByHour[0].Profit))
	assert.Equal(t, "14:00", o.ProfitByHour[1].Hour)
	_, counted := o.Result.TradesByHour["00:00"]
	assert.True(t, counted)
	require.Len(t, o.ProfitByMonth, 2)
	assert.Equal(t, "2024-02", o.ProfitByMonth[0].Month)
	assert.Equal(t, 1, o.ProfitByMonth[0].Count)
	assert.True(t, d("20").Equal(o.ProfitByMonth[0].Profit))
	assert.Equal(t, "2024-03", o.ProfitByMonth[1].Month)
	assert.Equal(t, 3, o.ProfitByMonth[1].Count)
	assert.True(t, d("20").Equal(o.ProfitByMonth[1].Profit))
}

func TestOverviewEmpty(t *testing.T) {
	t.Parallel()

	o := Overview(nil, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, o.Result.Empty())
	assert.Len(t, o.Calendar, 28)
	assert.Len(t, o.ProfitByWeekday, 7)
	assert.Empty(t, o.ProfitByHour)
	assert.Empty(t, o.ProfitByMonth)

	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"win_rate":null`)
}
