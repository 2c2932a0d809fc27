package risk

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

var (
	ErrNoStopDistance    = errors.New("entry and stop are equal")
	ErrUnknownInstrument = errors.New("unknown instrument")
)

type Inputs struct {
	Equity     decimal.Decimal `json:"equity"`
	RiskPct    decimal.Decimal `json:"risk_pct"` // 0.005
	Symbol     string          `json:"symbol"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	StopPrice  decimal.Decimal `json:"stop_price"`
}

type Result struct {
	Lots           decimal.Decimal `json:"lots"`
	StopPips       decimal.Decimal `json:"stop_pips"`
	RiskAmount     decimal.Decimal `json:"risk_amount"`
	PipValuePerLot decimal.Decimal `json:"pip_value_per_lot"` // settlement currency
}

// lotStep is the smallest lot increment sizing rounds down to.
var lotStep = decimal.RequireFromString("0.01")

// Calculate sizes a position so that hitting the stop loses RiskPct of
// Equity. Lots are floored to 0.01.
func Calculate(in Inputs, ref market.Reference) (Result, error) {
	spec, ok := ref.Catalog.Lookup(in.Symbol)
	if !ok {
		return Result{}, fmt.Errorf("%w %s", ErrUnknownInstrument, in.Symbol)
	}
	if spec.PipUnitSize.IsZero() {
		return Result{}, fmt.Errorf("instrument %s has no pip size", in.Symbol)
	}

	stopPips := in.EntryPrice.Sub(in.StopPrice).Abs().Div(spec.PipUnitSize)
	if stopPips.IsZero() {
		return Result{}, ErrNoStopDistance
	}

	riskAmt := in.Equity.Mul(in.RiskPct)
	pipValue := spec.ContractSize.Mul(spec.PipUnitSize).Mul(ref.Rates.Rate(spec.QuoteCurrency))

	lots := riskAmt.Div(stopPips.Mul(pipValue))

	return Result{
		Lots:           lots.Div(lotStep).Floor().Mul(lotStep),
		StopPips:       stopPips,
		RiskAmount:     riskAmt,
		PipValuePerLot: pipValue,
	}, nil
}
