package risk

import (
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/pnl"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

// PossibleLoss is the settlement-currency amount lost if the trade had
// been stopped out. It is never negative: a stop on the profitable side of
// entry, a missing stop or an unknown symbol all give zero.
func PossibleLoss(t trade.Trade, catalog market.Catalog, rates market.Rates) decimal.Decimal {
	if !t.StopLoss.Valid || !t.EntryPrice.IsPositive() || !t.StopLoss.Decimal.IsPositive() {
		return decimal.Zero
	}

	// Price the hypothetical exit at the stop in the opposite direction so
	// the move reads entry-stop for longs and stop-entry for shorts.
	stopped := t
	stopped.ExitPrice = t.StopLoss.Decimal
	stopped.Direction = opposite(t.Direction)

	loss := pnl.Profit(stopped, catalog, rates)
	if loss.IsNegative() {
		return decimal.Zero
	}
	return loss
}

func opposite(d trade.Direction) trade.Direction {
	if d == trade.Short {
		return trade.Long
	}
	return trade.Short
}

// StopPips is the distance from entry to stop in pips, or zero when
// either is unknown.
func StopPips(t trade.Trade, catalog market.Catalog) decimal.Decimal {
	spec, ok := catalog.Lookup(t.Symbol)
	if !ok || !t.StopLoss.Valid || spec.PipUnitSize.IsZero() {
		return decimal.Zero
	}
	return t.EntryPrice.Sub(t.StopLoss.Decimal).Abs().Div(spec.PipUnitSize)
}

// RMultiple is realized profit over possible loss. It is invalid when the
// trade carries no usable stop.
func RMultiple(t trade.Trade, catalog market.Catalog, rates market.Rates) decimal.NullDecimal {
	loss := PossibleLoss(t, catalog, rates)
	if loss.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: t.Profit().DivRound(loss, 4), Valid: true}
}
