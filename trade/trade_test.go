package trade

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPricer struct {
	pips, profit decimal.Decimal
	calls        int
}

func (p *fixedPricer) Price(Trade) (decimal.Decimal, decimal.Decimal) {
	p.calls++
	return p.pips, p.profit
}

func validInput() Input {
	return Input{
		Symbol:     " eur/usd ",
		Direction:  "Long",
		EntryPrice: "1.10000",
		ExitPrice:  "1.10500",
		LotSize:    "1",
		Date:       "2024-03-15",
		Time:       "9:30",
		StopLoss:   "1.09800",
		Notes:      "breakout",
	}
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	tr, err := validInput().Parse()
	require.NoError(t, err)

	assert.Equal(t, "EUR/USD", tr.Symbol)
	assert.Equal(t, Long, tr.Direction)
	assert.Equal(t, "1.1", tr.EntryPrice.String())
	assert.Equal(t, "1.105", tr.ExitPrice.String())
	assert.Equal(t, "2024-03-15", tr.Date)
	assert.Equal(t, "09:30", tr.Time)
	assert.True(t, tr.StopLoss.Valid)
	assert.Equal(t, "1.098", tr.StopLoss.Decimal.String())
	assert.True(t, tr.Profit().IsZero())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Input)
		errMsg string
	}{
		{"missing symbol", func(in *Input) { in.Symbol = "  " }, "symbol is required"},
		{"pipe in symbol", func(in *Input) { in.Symbol = "EUR|USD" }, "may not contain"},
		{"comma in symbol", func(in *Input) { in.Symbol = "A,B" }, "may not contain"},
		{"space in symbol", func(in *Input) { in.Symbol = "EUR USD" }, "may not contain"},
		{"bad direction", func(in *Input) { in.Direction = "sideways" }, "direction"},
		{"non-numeric entry", func(in *Input) { in.EntryPrice = "abc" }, "entry_price"},
		{"nan exit", func(in *Input) { in.ExitPrice = "NaN" }, "exit_price"},
		{"zero lot", func(in *Input) { in.LotSize = "0" }, "lot_size"},
		{"negative lot", func(in *Input) { in.LotSize = "-1" }, "must be positive"},
		{"bad date", func(in *Input) { in.Date = "15.03.2024" }, "YYYY-MM-DD"},
		{"bad time", func(in *Input) { in.Time = "25:00" }, "HH:MM"},
		{"bad stop", func(in *Input) { in.StopLoss = "x" }, "stop_loss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tt.mutate(&in)
			_, err := in.Parse()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParse_ReportsAllFields(t *testing.T) {
	t.Parallel()

	_, err := Input{}.Parse()
	require.Error(t, err)
	for _, field := range []string{"symbol", "direction", "entry_price", "exit_price", "lot_size", "date"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestParse_OptionalFields(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Time = ""
	in.StopLoss = ""
	tr, err := in.Parse()
	require.NoError(t, err)
	assert.False(t, tr.HasTime())
	assert.False(t, tr.StopLoss.Valid)
}

func TestFromTrade_RoundTrip(t *testing.T) {
	t.Parallel()

	tr, err := validInput().Parse()
	require.NoError(t, err)

	again, err := FromTrade(tr).Parse()
	require.NoError(t, err)
	assert.Equal(t, tr.Symbol, again.Symbol)
	assert.Equal(t, tr.Direction, again.Direction)
	assert.True(t, tr.EntryPrice.Equal(again.EntryPrice))
	assert.True(t, tr.ExitPrice.Equal(again.ExitPrice))
	assert.True(t, tr.LotSize.Equal(again.LotSize))
	assert.True(t, tr.StopLoss.Decimal.Equal(again.StopLoss.Decimal))
	assert.Equal(t, tr.Date, again.Date)
	assert.Equal(t, tr.Time, again.Time)
	assert.Equal(t, tr.Notes, again.Notes)
}

func TestPriced(t *testing.T) {
	t.Parallel()

	tr, err := validInput().Parse()
	require.NoError(t, err)

	p := &fixedPricer{pips: decimal.NewFromInt(50), profit: decimal.NewFromInt(50)}
	priced := tr.Priced(p)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "50", priced.Pips().String())
	assert.Equal(t, "50", priced.Profit().String())
	assert.True(t, tr.Profit().IsZero(), "original is untouched")
}

func TestKeys(t *testing.T) {
	t.Parallel()

	timed := Trade{Date: "2024-03-15", Time: "14:45"}
	untimed := Trade{Date: "2024-03-15"}

	assert.Equal(t, "2024-03-15T14:45", timed.SortKey())
	assert.Equal(t, "2024-03-15T00:00", untimed.SortKey())
	assert.Equal(t, "14:00", timed.Hour())
	assert.Equal(t, "00:00", untimed.Hour())
	assert.Equal(t, "2024-03", timed.Month())
	assert.Equal(t, "2024-03-15", timed.Day())

	wd, ok := timed.Weekday()
	assert.True(t, ok)
	assert.Equal(t, time.Friday, wd)
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	tr := Restore(Trade{
		ID:         "T1",
		Symbol:     "EUR/USD",
		Direction:  Long,
		EntryPrice: decimal.RequireFromString("1.1"),
		ExitPrice:  decimal.RequireFromString("1.105"),
		LotSize:    decimal.NewFromInt(1),
		Date:       "2024-03-15",
	}, decimal.NewFromInt(50), decimal.NewFromInt(50))

	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "50", got["profit"])
	assert.Equal(t, "50", got["pips"])
	assert.Nil(t, got["stop_loss"])
	assert.NotContains(t, got, "time")
}

func TestFieldUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var in Input
	err := json.Unmarshal([]byte(`{"symbol":"EUR/USD","entry_price":1.1,"exit_price":"1.2","lot_size":null}`), &in)
	require.NoError(t, err)
	assert.Equal(t, Field("1.1"), in.EntryPrice)
	assert.Equal(t, Field("1.2"), in.ExitPrice)
	assert.Equal(t, Field(""), in.LotSize)
}
