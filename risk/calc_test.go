package risk

import (
	"testing"

	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func withStop(symbol string, dir trade.Direction, entry, stop, lots string) trade.Trade {
	t := trade.Trade{
		Symbol:     symbol,
		Direction:  dir,
		EntryPrice: d(entry),
		ExitPrice:  d(entry),
		LotSize:    d(lots),
		Date:       "2024-01-02",
	}
	if stop != "" {
		t.StopLoss = decimal.NullDecimal{Decimal: d(stop), Valid: true}
	}
	return t
}

func TestPossibleLoss(t *testing.T) {
	t.Parallel()

	ref := testRef()

	tests := []struct {
		name  string
		trade trade.Trade
		want  string
	}{
		{"long_stop_below", withStop("EUR/USD", trade.Long, "1.10000", "1.09800", "1"), "200"},
		{"short_stop_above", withStop("EUR/USD", trade.Short, "1.10000", "1.10300", "2"), "600"},
		{"long_stop_on_profit_side", withStop("EUR/USD", trade.Long, "1.10000", "1.10500", "1"), "0"},
		{"short_stop_on_profit_side", withStop("EUR/USD", trade.Short, "1.10000", "1.09000", "1"), "0"},
		{"missing_stop", withStop("EUR/USD", trade.Long, "1.10000", "", "1"), "0"},
		{"unknown_symbol", withStop("ZZZ/USD", trade.Long, "1.10000", "1.0", "1"), "0"},
		{"jpy_conversion", withStop("USD/JPY", trade.Short, "150.00", "150.50", "1"), "455"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PossibleLoss(tt.trade, ref.Catalog, ref.Rates)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestStopPips(t *testing.T) {
	t.Parallel()

	cat := market.DefaultCatalog()
	assert.True(t, d("20").Equal(StopPips(withStop("EUR/USD", trade.Long, "1.1", "1.098", "1"), cat)))
	assert.True(t, StopPips(withStop("EUR/USD", trade.Long, "1.1", "", "1"), cat).IsZero())
}

func TestRMultiple(t *testing.T) {
	t.Parallel()

	ref := testRef()
	tr := trade.Restore(withStop("EUR/USD", trade.Long, "1.10000", "1.09800", "1"), d("40"), d("400"))

	r := RMultiple(tr, ref.Catalog, ref.Rates)
	assert.True(t, r.Valid)
	assert.True(t, d("2").Equal(r.Decimal))

	none := RMultiple(withStop("EUR/USD", trade.Long, "1.1", "", "1"), ref.Catalog, ref.Rates)
	assert.False(t, none.Valid)
}
