// Package calendar buckets trades by calendar day and month.
//
// Day keys are the first ten characters of the trade's date string, never
// a timezone conversion, so they always agree with what was stored.
package calendar

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

const MonthLayout = "2006-01"

type Bucket struct {
	Count  int             `json:"count"`
	Profit decimal.Decimal `json:"profit"`
}

func (b Bucket) add(t trade.Trade) Bucket {
	return Bucket{Count: b.Count + 1, Profit: b.Profit.Add(t.Profit())}
}

// Days maps a YYYY-MM-DD key to its bucket.
type Days map[string]Bucket

// Keys returns the day keys in ascending order.
func (d Days) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WinLoss counts days that closed with a positive or negative profit.
func (d Days) WinLoss() (winning, losing int) {
	for _, b := range d {
		switch b.Profit.Sign() {
		case 1:
			winning++
		case -1:
			losing++
		}
	}
	return winning, losing
}

// AggregateByDay buckets trades by day.
//
// With a yearMonth (YYYY-MM) the result covers exactly that month: every
// day is present, including days with no trades, and trades outside the
// month are ignored. With an empty yearMonth only days that have at least
// one trade are emitted.
func AggregateByDay(trades []trade.Trade, yearMonth string) Days {
	if yearMonth == "" {
		out := make(Days)
		for _, t := range trades {
			out[t.Day()] = out[t.Day()].add(t)
		}
		return out
	}

	days := MonthDays(yearMonth)
	out := make(Days, len(days))
	for _, d := range days {
		out[d] = Bucket{Profit: decimal.Zero}
	}
	for _, t := range trades {
		if b, ok := out[t.Day()]; ok {
			out[t.Day()] = b.add(t)
		}
	}
	return out
}

// ByMonth buckets trades by YYYY-MM.
func ByMonth(trades []trade.Trade) map[string]Bucket {
	out := make(map[string]Bucket)
	for _, t := range trades {
		out[t.Month()] = out[t.Month()].add(t)
	}
	return out
}

// ParseMonth validates a YYYY-MM key.
func ParseMonth(yearMonth string) (time.Time, error) {
	return time.Parse(MonthLayout, yearMonth)
}

// MonthDays lists every day key of yearMonth. It returns nil if yearMonth
// is not a valid YYYY-MM.
func MonthDays(yearMonth string) []string {
	first, err := ParseMonth(yearMonth)
	if err != nil {
		return nil
	}

	var out []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(trade.DateLayout))
	}
	return out
}

// CurrentMonth is the YYYY-MM key for now.
func CurrentMonth(now time.Time) string {
	return now.Format(MonthLayout)
}

// TradesOn returns the trades on day, keeping their order.
func TradesOn(trades []trade.Trade, day string) []trade.Trade {
	var out []trade.Trade
	for _, t := range trades {
		if t.Day() == day {
			out = append(out, t)
		}
	}
	return out
}
