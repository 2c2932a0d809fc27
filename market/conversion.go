package market

import (
	"github.com/shopspring/decimal"
)

// SettlementCurrency is the currency every profit is reported in.
const SettlementCurrency = "USD"

// Rates maps a quote currency to its conversion factor into the
// settlement currency.
type Rates map[string]decimal.Decimal

// Rate returns the conversion factor for currency, or 1 when the
// currency is not in the table.
func (r Rates) Rate(currency string) decimal.Decimal {
	if rate, ok := r[currency]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// DefaultRates returns the built-in quote -> USD table.
func DefaultRates() Rates {
	return Rates{
		"USD": decimal.NewFromInt(1),
		"JPY": decimal.NewFromInt(1).DivRound(decimal.RequireFromString("144.88948"), 12),
		"CHF": decimal.RequireFromString("1.10"),
		"CAD": decimal.RequireFromString("0.73"),
		"GBP": decimal.RequireFromString("1.27"),
		"EUR": decimal.RequireFromString("1.08"),
	}
}

// Reference bundles the static lookup tables the calculators need. It is
// built once from configuration and passed explicitly.
type Reference struct {
	Settlement string
	Catalog    Catalog
	Rates      Rates
}

// DefaultReference returns the built-in catalog and rates settled in USD.
func DefaultReference() Reference {
	return Reference{
		Settlement: SettlementCurrency,
		Catalog:    DefaultCatalog(),
		Rates:      DefaultRates(),
	}
}

// QuoteToSettlement returns the rate that converts a price move of
// instrument into the settlement currency. ok is false when the instrument
// is unknown.
func (r Reference) QuoteToSettlement(instrument string) (rate decimal.Decimal, ok bool) {
	spec, ok := r.Catalog.Lookup(instrument)
	if !ok {
		return decimal.Zero, false
	}
	return r.Rates.Rate(spec.QuoteCurrency), true
}
