// market/instruments.go
package market

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InstrumentSpec describes how a quoted instrument converts a price move
// into money. PipUnitSize is the absolute size of one pip and ContractSize
// the number of base units in one lot.
type InstrumentSpec struct {
	PipUnitSize   decimal.Decimal `json:"pip_unit_size" yaml:"pip_unit_size"`
	ContractSize  decimal.Decimal `json:"contract_size" yaml:"contract_size"`
	QuoteCurrency string          `json:"quote_currency" yaml:"quote_currency"`
}

// Catalog maps an instrument symbol ("EUR/USD") to its spec.
type Catalog map[string]InstrumentSpec

// Lookup returns the spec for symbol.
func (c Catalog) Lookup(symbol string) (InstrumentSpec, bool) {
	spec, ok := c[symbol]
	return spec, ok
}

// Symbols returns the catalog keys in lexical order.
func (c Catalog) Symbols() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func spec(pip, contract, quote string) InstrumentSpec {
	return InstrumentSpec{
		PipUnitSize:   decimal.RequireFromString(pip),
		ContractSize:  decimal.RequireFromString(contract),
		QuoteCurrency: quote,
	}
}

// DefaultCatalog returns the built-in instrument table. Callers get a fresh
// map so edits never leak between users of the default.
func DefaultCatalog() Catalog {
	return Catalog{
		"EUR/USD": spec("0.0001", "100000", "USD"),
		"GBP/USD": spec("0.0001", "100000", "USD"),
		"USD/JPY": spec("0.01", "100000", "JPY"),
		"USD/CHF": spec("0.0001", "100000", "CHF"),
		"AUD/USD": spec("0.0001", "100000", "USD"),
		"USD/CAD": spec("0.0001", "100000", "CAD"),
		"NZD/USD": spec("0.0001", "100000", "USD"),
		"EUR/GBP": spec("0.0001", "100000", "GBP"),
		"EUR/JPY": spec("0.01", "100000", "JPY"),
		"GBP/JPY": spec("0.01", "100000", "JPY"),
		"XAU/USD": spec("0.01", "100", "USD"),
		"BTC/USD": spec("1", "1", "USD"),
	}
}
