package risk

import (
	"testing"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testRef() market.Reference {
	return market.Reference{
		Settlement: "USD",
		Catalog:    market.DefaultCatalog(),
		Rates:      market.Rates{"USD": d("1"), "JPY": d("0.0091")},
	}
}

func TestCalculate_SimpleUSDQuote(t *testing.T) {
	t.Parallel()

	got, err := Calculate(Inputs{
		Equity:     d("10000"),
		RiskPct:    d("0.01"),
		Symbol:     "EUR/USD",
		EntryPrice: d("1.2000"),
		StopPrice:  d("1.1900"),
	}, testRef())
	require.NoError(t, err)

	assert.True(t, d("100").Equal(got.StopPips))
	assert.True(t, d("100").Equal(got.RiskAmount))
	assert.True(t, d("10").Equal(got.PipValuePerLot))
	assert.True(t, d("0.1").Equal(got.Lots), "lots: %s", got.Lots)
}

func TestCalculate_NonUSDQuoteConversion(t *testing.T) {
	t.Parallel()

	got, err := Calculate(Inputs{
		Equity:     d("5000"),
		RiskPct:    d("0.02"),
		Symbol:     "USD/JPY",
		EntryPrice: d("150.00"),
		StopPrice:  d("149.50"),
	}, testRef())
	require.NoError(t, err)

	// 100 / (50 pips * 1000 JPY * 0.0091) = 0.2197...
	assert.True(t, d("50").Equal(got.StopPips))
	assert.True(t, d("100").Equal(got.RiskAmount))
	assert.True(t, d("0.21").Equal(got.Lots), "lots: %s", got.Lots)
}

func TestCalculate_StopAboveEntry(t *testing.T) {
	t.Parallel()

	got, err := Calculate(Inputs{
		Equity:     d("2000"),
		RiskPct:    d("0.005"),
		Symbol:     "EUR/USD",
		EntryPrice: d("1.0000"),
		StopPrice:  d("1.0100"),
	}, testRef())
	require.NoError(t, err)

	assert.True(t, d("100").Equal(got.StopPips))
	assert.True(t, d("10").Equal(got.RiskAmount))
	assert.True(t, d("0.01").Equal(got.Lots), "lots: %s", got.Lots)
}

func TestCalculate_Errors(t *testing.T) {
	t.Parallel()

	_, err := Calculate(Inputs{Symbol: "NOPE", EntryPrice: d("1"), StopPrice: d("2")}, testRef())
	assert.ErrorIs(t, err, ErrUnknownInstrument)

	_, err = Calculate(Inputs{Symbol: "EUR/USD", EntryPrice: d("1.1"), StopPrice: d("1.1")}, testRef())
	assert.ErrorIs(t, err, ErrNoStopDistance)
}
