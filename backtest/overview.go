package backtest

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradelog/calendar"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

type SymbolProfit struct {
	Symbol string          `json:"symbol"`
	Profit decimal.Decimal `json:"profit"`
}

type WeekdayProfit struct {
	Weekday string          `json:"weekday"`
	Profit  decimal.Decimal `json:"profit"`
}

type MonthProfit struct {
	Month  string          `json:"month"`
	Count  int             `json:"count"`
	Profit decimal.Decimal `json:"profit"`
}

type HourProfit struct {
	Hour   string          `json:"hour"`
	Profit decimal.Decimal `json:"profit"`
}

// Dashboard is the all-time performance view plus the current month's
// calendar.
type Dashboard struct {
	Result      Result        `json:"result"`
	Month       string        `json:"month"`
	Calendar    calendar.Days `json:"calendar"`
	WinningDays int           `json:"winning_days"`
	LosingDays  int           `json:"losing_days"`

	ProfitBySymbol  []SymbolProfit  `json:"profit_by_symbol"`
	ProfitByWeekday []WeekdayProfit `json:"profit_by_weekday"`
	ProfitByHour    []HourProfit    `json:"profit_by_hour"`
	ProfitByMonth   []MonthProfit   `json:"profit_by_month"`
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Overview summarizes every trade and back-fills the calendar for the
// month containing now.
//
// Unlike Run's TradesByHour, ProfitByHour leaves out trades with no
// recorded time instead of counting them at 00:00.
func Overview(trades []trade.Trade, now time.Time) Dashboard {
	month := calendar.CurrentMonth(now)
	days := calendar.AggregateByDay(trades, month)
	win, lose := days.WinLoss()

	return Dashboard{
		Result:          Run(trades, Filter{}),
		Month:           month,
		Calendar:        days,
		WinningDays:     win,
		LosingDays:      lose,
		ProfitBySymbol:  profitBySymbol(trades),
		ProfitByWeekday: profitByWeekday(trades),
		ProfitByHour:    profitByHour(trades),
		ProfitByMonth:   profitByMonth(trades),
	}
}

func profitByMonth(trades []trade.Trade) []MonthProfit {
	months := calendar.ByMonth(trades)
	out := make([]MonthProfit, 0, len(months))
	for _, m := range sortedKeys(months) {
		out = append(out, MonthProfit{Month: m, Count: months[m].Count, Profit: months[m].Profit})
	}
	return out
}

func profitBySymbol(trades []trade.Trade) []SymbolProfit {
	idx := make(map[string]int)
	var out []SymbolProfit
	for _, t := range trades {
		i, ok := idx[t.Symbol]
		if !ok {
			i = len(out)
			idx[t.Symbol] = i
			out = append(out, SymbolProfit{Symbol: t.Symbol, Profit: decimal.Zero})
		}
		out[i].Profit = out[i].Profit.Add(t.Profit())
	}
	return out
}

func profitByWeekday(trades []trade.Trade) []WeekdayProfit {
	sums := make(map[time.Weekday]decimal.Decimal, 7)
	for _, t := range trades {
		if wd, ok := t.Weekday(); ok {
			sums[wd] = sums[wd].Add(t.Profit())
		}
	}

	out := make([]WeekdayProfit, 0, len(weekdays))
	for _, wd := range weekdays {
		out = append(out, WeekdayProfit{Weekday: wd.String(), Profit: sums[wd]})
	}
	return out
}

func profitByHour(trades []trade.Trade) []HourProfit {
	sums := make(map[string]decimal.Decimal)
	for _, t := range trades {
		if t.HasTime() {
			sums[t.Hour()] = sums[t.Hour()].Add(t.Profit())
		}
	}

	out := make([]HourProfit, 0, len(sums))
	for h, p := range sums {
		out = append(out, HourProfit{Hour: h, Profit: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
