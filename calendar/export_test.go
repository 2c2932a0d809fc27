package calendar

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustyeddy/tradelog/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFormat(t *testing.T) {
	t.Parallel()

	recs := Export(AggregateByDay(sample, ""), sample)

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, recs))
	assert.Equal(t,
		"2024-02-01|3|7.50|EUR/USD,GBP/USD\n"+
			"2024-02-29|1|-20.00|USD/JPY\n"+
			"2024-03-01|1|7.00|EUR/USD\n",
		buf.String())
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	trades := append(append([]trade.Trade{}, sample...), tr("EUR/USD", "2024-01-15", "0.125"), tr("XAU/USD", "2024-01-15", "3.333"))
	days := AggregateByDay(trades, "")
	recs := Export(days, trades)

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, recs))

	parsed, err := ParseExport(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(days))

	for i, p := range parsed {
		want := days[p.Date]
		assert.Equal(t, recs[i].Date, p.Date)
		assert.Equal(t, want.Count, p.Count)
		assert.True(t, want.Profit.Round(2).Equal(p.Profit), "%s: %s vs %s", p.Date, want.Profit, p.Profit)
		assert.ElementsMatch(t, recs[i].Symbols, p.Symbols)
	}
}

func TestExportRoundTripParsedSymbols(t *testing.T) {
	t.Parallel()

	var trades []trade.Trade
	for _, sym := range []string{"EUR/USD", "xau/usd", "BTC-PERP", "EUR|USD", "A,B", "EUR USD"} {
		in := trade.Input{
			Symbol:     sym,
			Direction:  "long",
			EntryPrice: "1",
			ExitPrice:  "2",
			LotSize:    "1",
			Date:       "2024-01-02",
		}
		parsed, err := in.Parse()
		if strings.ContainsAny(sym, "|, ") {
			assert.ErrorIs(t, err, trade.ErrInvalid, sym)
			continue
		}
		require.NoError(t, err, sym)
		trades = append(trades, parsed)
	}
	require.Len(t, trades, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, Export(AggregateByDay(trades, ""), trades)))
	assert.Equal(t, "2024-01-02|3|0.00|EUR/USD,XAU/USD,BTC-PERP\n", buf.String())

	parsed, err := ParseExport(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, []string{"EUR/USD", "XAU/USD", "BTC-PERP"}, parsed[0].Symbols)
}

func TestExportEmptyMonthDays(t *testing.T) {
	t.Parallel()

	recs := Export(AggregateByDay(sample, "2024-03"), sample)
	require.Len(t, recs, 31)
	assert.Equal(t, "2024-03-01|1|7.00|EUR/USD", recs[0].String())
	assert.Equal(t, "2024-03-02|0|0.00|", recs[1].String())
}

func TestParseExportErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"too_few_fields", "2024-01-01|1|2.00\n"},
		{"bad_date", "2024-1-1|1|2.00|EUR/USD\n"},
		{"bad_count", "2024-01-01|x|2.00|EUR/USD\n"},
		{"negative_count", "2024-01-01|-1|2.00|EUR/USD\n"},
		{"bad_profit", "2024-01-01|1|abc|EUR/USD\n"},
		{"duplicate_date", "2024-01-01|1|2.00|EUR/USD\n2024-01-01|1|2.00|EUR/USD\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseExport(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseExportSkipsBlankLines(t *testing.T) {
	t.Parallel()

	got, err := ParseExport(strings.NewReader("\n2024-01-01|0|0.00|\n\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Symbols)
}

func TestSaveLoadExport(t *testing.T) {
	t.Parallel()

	recs := Export(AggregateByDay(sample, ""), sample)

	for _, name := range []string{"cal.txt", "cal.txt.xz", "cal.txt.lzma"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveExport(path, recs))

			got, err := LoadExport(path)
			require.NoError(t, err)
			require.Len(t, got, len(recs))
			for i := range recs {
				assert.Equal(t, recs[i].String(), got[i].String())
			}
		})
	}
}
