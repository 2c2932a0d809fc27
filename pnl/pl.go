// Package pnl turns a closed trade into pips and realized profit in the
// settlement currency.
package pnl

import (
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

// Quote is the result of pricing one trade.
type Quote struct {
	Pips   decimal.Decimal
	Profit decimal.Decimal
}

// Compute prices t against the catalog and rate table. An unknown symbol
// yields a zero quote rather than an error.
//
// The pip count and the per-pip value are computed separately even though
// pipUnitSize cancels out of the profit, because pips are shown on their own.
func Compute(t trade.Trade, catalog market.Catalog, rates market.Rates) Quote {
	spec, ok := catalog.Lookup(t.Symbol)
	if !ok || spec.PipUnitSize.IsZero() {
		return Quote{Pips: decimal.Zero, Profit: decimal.Zero}
	}

	move := priceMove(t.Direction, t.EntryPrice, t.ExitPrice)
	pips := move.Div(spec.PipUnitSize)

	valuePerPipPerLot := spec.ContractSize.Mul(spec.PipUnitSize)
	profit := pips.
		Mul(valuePerPipPerLot).
		Mul(rates.Rate(spec.QuoteCurrency)).
		Mul(t.LotSize)

	return Quote{Pips: pips, Profit: profit}
}

// Profit is Compute(...).Profit.
func Profit(t trade.Trade, catalog market.Catalog, rates market.Rates) decimal.Decimal {
	return Compute(t, catalog, rates).Profit
}

// priceMove is the signed move in the trade's favour.
func priceMove(d trade.Direction, entry, exit decimal.Decimal) decimal.Decimal {
	if d == trade.Short {
		return entry.Sub(exit)
	}
	return exit.Sub(entry)
}

// Calculator binds Compute to one reference table. It satisfies
// trade.Pricer.
type Calculator struct {
	Ref market.Reference
}

func NewCalculator(ref market.Reference) Calculator {
	return Calculator{Ref: ref}
}

func (c Calculator) Quote(t trade.Trade) Quote {
	return Compute(t, c.Ref.Catalog, c.Ref.Rates)
}

func (c Calculator) Price(t trade.Trade) (pips, profit decimal.Decimal) {
	q := c.Quote(t)
	return q.Pips, q.Profit
}

// Known reports whether the trade's symbol resolves in the catalog.
func (c Calculator) Known(t trade.Trade) bool {
	_, ok := c.Ref.Catalog.Lookup(t.Symbol)
	return ok
}
