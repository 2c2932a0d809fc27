package backtest

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

const rule = "--------------------------------------------------"

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func describe(f Filter) (from, to, symbol string) {
	from, to, symbol = f.Start, f.End, f.Symbol
	if from == "" {
		from = "(first trade)"
	}
	if to == "" {
		to = "(last trade)"
	}
	if symbol == "" {
		symbol = AllSymbols
	}
	return from, to, symbol
}

// PrintResult writes a plain-text report of r.
func PrintResult(w io.Writer, f Filter, r Result) {
	from, to, symbol := describe(f)

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "From:          %s\n", from)
	fmt.Fprintf(w, "To:            %s\n", to)
	fmt.Fprintf(w, "Symbol:        %s\n", symbol)

	if r.Empty() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No trades match the filter.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Trades:        %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", r.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", r.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.WinRate)
	fmt.Fprintf(w, "Win Streak:    %d\n", r.MaxWinStreak)
	fmt.Fprintf(w, "Loss Streak:   %d\n", r.MaxLoseStreak)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Profit:  %s\n", money(r.TotalProfit))
	fmt.Fprintf(w, "Avg Profit:    %s\n", money(r.AverageProfit.Decimal))
	fmt.Fprintf(w, "Avg Win:       %s\n", money(r.AverageWin))
	fmt.Fprintf(w, "Avg Loss:      %s\n", money(r.AverageLoss))
	fmt.Fprintf(w, "Best Trade:    %s\n", money(r.BiggestWinner))
	fmt.Fprintf(w, "Worst Trade:   %s\n", money(r.BiggestLoser))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", money(r.MaxDrawdown))
	fmt.Fprintf(w, "Profit Factor: %.2f\n", r.ProfitFactor)
	fmt.Fprintf(w, "Risk/Reward:   %.2f\n", r.RiskRewardRatio)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades by Symbol")
	fmt.Fprintln(w, rule)
	for _, k := range sortedKeys(r.TradesBySymbol) {
		fmt.Fprintf(w, "%-14s %d\n", k, r.TradesBySymbol[k])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trades by Month")
	fmt.Fprintln(w, rule)
	for _, k := range sortedKeys(r.TradesByMonth) {
		fmt.Fprintf(w, "%-14s %d\n", k, r.TradesByMonth[k])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit by Hour")
	fmt.Fprintln(w, rule)
	for _, k := range sortedKeys(r.TradesByHour) {
		fmt.Fprintf(w, "%-14s %s\n", k, money(r.TradesByHour[k]))
	}

	fmt.Fprintln(w)
}

// PrintDashboard writes the overview as plain text.
func PrintDashboard(w io.Writer, d Dashboard) {
	PrintResult(w, Filter{}, d.Result)

	fmt.Fprintf(w, "Month %s\n", d.Month)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Winning Days:  %d\n", d.WinningDays)
	fmt.Fprintf(w, "Losing Days:   %d\n", d.LosingDays)
	for _, day := range d.Calendar.Keys() {
		b := d.Calendar[day]
		if b.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s     %3d  %s\n", day, b.Count, money(b.Profit))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit by Weekday")
	fmt.Fprintln(w, rule)
	for _, p := range d.ProfitByWeekday {
		fmt.Fprintf(w, "%-14s %s\n", p.Weekday, money(p.Profit))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit by Month")
	fmt.Fprintln(w, rule)
	for _, p := range d.ProfitByMonth {
		fmt.Fprintf(w, "%-14s %3d  %s\n", p.Month, p.Count, money(p.Profit))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit by Symbol")
	fmt.Fprintln(w, rule)
	for _, p := range d.ProfitBySymbol {
		fmt.Fprintf(w, "%-14s %s\n", p.Symbol, money(p.Profit))
	}
	fmt.Fprintln(w)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// winRateText renders NaN as n/a.
func winRateText(r Result) string {
	if math.IsNaN(r.WinRate) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.WinRate)
}
