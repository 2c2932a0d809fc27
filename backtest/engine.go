// Package backtest derives performance statistics from a snapshot of
// journaled trades.
//
// Every function here is pure: it reads the trades it is given, never
// mutates them and keeps no state between calls.
package backtest

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/rustyeddy/tradelog/calendar"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

// AllSymbols disables the symbol filter.
const AllSymbols = "all"

// Filter selects trades by inclusive date range and symbol. Empty fields
// do not filter.
type Filter struct {
	Start  string `json:"start,omitempty" form:"start"`
	End    string `json:"end,omitempty" form:"end"`
	Symbol string `json:"symbol,omitempty" form:"symbol"`
}

func (f Filter) Match(t trade.Trade) bool {
	if f.Start != "" && t.Date < f.Start {
		return false
	}
	if f.End != "" && t.Date > f.End {
		return false
	}
	if f.Symbol != "" && f.Symbol != AllSymbols && t.Symbol != f.Symbol {
		return false
	}
	return true
}

// Apply returns the matching trades in their original order.
func (f Filter) Apply(trades []trade.Trade) []trade.Trade {
	out := make([]trade.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a chronologically ordered copy of trades. Trades with the
// same key keep their relative order.
func Sort(trades []trade.Trade) []trade.Trade {
	out := append([]trade.Trade(nil), trades...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// EquityPoint is the running profit after one trade.
type EquityPoint struct {
	Date   string          `json:"date"`
	Profit decimal.Decimal `json:"profit"`
}

// Result is the statistics bundle for one run. Check TotalTrades before
// trusting the rate fields: WinRate is NaN and AverageProfit is null when
// no trade matched.
type Result struct {
	TotalTrades   int `json:"total_trades"`
	WinningTrades int `json:"winning_trades"`
	LosingTrades  int `json:"losing_trades"`

	WinRate         float64             `json:"win_rate"`
	TotalProfit     decimal.Decimal     `json:"total_profit"`
	AverageProfit   decimal.NullDecimal `json:"average_profit"`
	MaxDrawdown     decimal.Decimal     `json:"max_drawdown"`
	ProfitFactor    float64             `json:"profit_factor"`
	AverageWin      decimal.Decimal     `json:"average_win"`
	AverageLoss     decimal.Decimal     `json:"average_loss"`
	RiskRewardRatio float64             `json:"risk_reward_ratio"`

	GrossGain     decimal.Decimal `json:"gross_gain"`
	GrossLoss     decimal.Decimal `json:"gross_loss"`
	MaxWinStreak  int             `json:"max_win_streak"`
	MaxLoseStreak int             `json:"max_lose_streak"`
	BiggestWinner decimal.Decimal `json:"biggest_winner"`
	BiggestLoser  decimal.Decimal `json:"biggest_loser"`

	TradesBySymbol   map[string]int             `json:"trades_by_symbol"`
	TradesByMonth    map[string]int             `json:"trades_by_month"`
	TradesByHour     map[string]decimal.Decimal `json:"trades_by_hour"`
	TradesByDay      calendar.Days              `json:"trades_by_day"`
	CumulativeProfit []EquityPoint              `json:"cumulative_profit"`

	// Trades is the filtered, sorted snapshot the result was computed from.
	Trades []trade.Trade `json:"-"`
}

func (r Result) Empty() bool { return r.TotalTrades == 0 }

// MarshalJSON writes an undefined win rate as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	var winRate *float64
	if !math.IsNaN(r.WinRate) {
		winRate = &r.WinRate
	}
	return json.Marshal(struct {
		plain
		WinRate *float64 `json:"win_rate"`
	}{plain(r), winRate})
}

// Run filters, sorts and summarizes trades.
func Run(trades []trade.Trade, f Filter) Result {
	sorted := Sort(f.Apply(trades))

	r := Result{
		TotalTrades:      len(sorted),
		TotalProfit:      decimal.Zero,
		MaxDrawdown:      decimal.Zero,
		AverageWin:       decimal.Zero,
		AverageLoss:      decimal.Zero,
		GrossGain:        decimal.Zero,
		GrossLoss:        decimal.Zero,
		BiggestWinner:    decimal.Zero,
		BiggestLoser:     decimal.Zero,
		TradesBySymbol:   make(map[string]int),
		TradesByMonth:    make(map[string]int),
		TradesByHour:     make(map[string]decimal.Decimal),
		CumulativeProfit: make([]EquityPoint, 0, len(sorted)),
		Trades:           sorted,
	}

	for i, t := range sorted {
		p := t.Profit()
		r.TotalProfit = r.TotalProfit.Add(p)

		switch p.Sign() {
		case 1:
			r.WinningTrades++
			r.GrossGain = r.GrossGain.Add(p)
		case -1:
			r.LosingTrades++
			r.GrossLoss = r.GrossLoss.Add(p.Abs())
		}

		if i == 0 || p.GreaterThan(r.BiggestWinner) {
			r.BiggestWinner = p
		}
		if i == 0 || p.LessThan(r.BiggestLoser) {
			r.BiggestLoser = p
		}

		r.TradesBySymbol[t.Symbol]++
		r.TradesByMonth[t.Month()]++
		r.TradesByHour[t.Hour()] = r.TradesByHour[t.Hour()].Add(p)
	}

	r.MaxDrawdown, r.CumulativeProfit = drawdown(sorted)
	r.MaxWinStreak, r.MaxLoseStreak = Streaks(sorted)
	r.TradesByDay = calendar.AggregateByDay(sorted, "")

	if r.TotalTrades == 0 {
		r.WinRate = math.NaN()
		return r
	}

	n := decimal.NewFromInt(int64(r.TotalTrades))
	r.WinRate = float64(r.WinningTrades) / float64(r.TotalTrades) * 100
	r.AverageProfit = decimal.NewNullDecimal(r.TotalProfit.Div(n))

	if r.GrossLoss.IsPositive() {
		r.ProfitFactor = r.GrossGain.Div(r.GrossLoss).InexactFloat64()
	}
	if r.WinningTrades > 0 {
		r.AverageWin = r.GrossGain.Div(decimal.NewFromInt(int64(r.WinningTrades)))
	}
	if r.LosingTrades > 0 {
		r.AverageLoss = r.GrossLoss.Div(decimal.NewFromInt(int64(r.LosingTrades)))
	}
	if r.AverageLoss.IsPositive() {
		r.RiskRewardRatio = r.AverageWin.Div(r.AverageLoss).InexactFloat64()
	}
	return r
}

// drawdown walks the running balance from zero. The curve has one point
// per trade; days are not merged.
func drawdown(sorted []trade.Trade) (decimal.Decimal, []EquityPoint) {
	var (
		balance = decimal.Zero
		peak    = decimal.Zero
		maxDD   = decimal.Zero
		curve   = make([]EquityPoint, 0, len(sorted))
	)
	for _, t := range sorted {
		balance = balance.Add(t.Profit())
		curve = append(curve, EquityPoint{Date: t.Date, Profit: balance})

		peak = decimal.Max(peak, balance)
		if dd := peak.Sub(balance); dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD, curve
}

// Symbols lists the distinct symbols in trades in first-seen order, for
// building a symbol filter.
func Symbols(trades []trade.Trade) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range trades {
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			out = append(out, t.Symbol)
		}
	}
	return out
}
