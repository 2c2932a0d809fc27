// Package trade holds the journal's unit of record.
package trade

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// Midnight stands in for an absent time of day when ordering trades.
	Midnight = "00:00"
)

type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Long:
		return Long, nil
	case Short:
		return Short, nil
	default:
		return "", fmt.Errorf("%w: direction %q must be long or short", ErrInvalid, s)
	}
}

// Pricer derives pips and settlement-currency profit from a trade's
// symbol, direction, prices and size.
type Pricer interface {
	Price(t Trade) (pips, profit decimal.Decimal)
}

// Trade is an executed, closed position. Pips and Profit are derived from
// the price and size fields and can only be set through Priced or Restore.
type Trade struct {
	ID         string
	Symbol     string
	Direction  Direction
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	LotSize    decimal.Decimal
	Date       string // YYYY-MM-DD
	Time       string // HH:MM, empty when not recorded
	StopLoss   decimal.NullDecimal
	Notes      string

	pips   decimal.Decimal
	profit decimal.Decimal
}

// Priced returns a copy of t with pips and profit recomputed by p.
func (t Trade) Priced(p Pricer) Trade {
	t.pips, t.profit = p.Price(t)
	return t
}

// Restore rehydrates a trade whose derived fields were computed when it
// was stored. Storage backends use it; everything else goes through Priced.
func Restore(t Trade, pips, profit decimal.Decimal) Trade {
	t.pips = pips
	t.profit = profit
	return t
}

func (t Trade) Pips() decimal.Decimal   { return t.pips }
func (t Trade) Profit() decimal.Decimal { return t.profit }

func (t Trade) HasTime() bool { return t.Time != "" }

// SortKey is the chronological key used to order trades. An absent time
// sorts as midnight.
func (t Trade) SortKey() string {
	tm := t.Time
	if tm == "" {
		tm = Midnight
	}
	return t.Date + "T" + tm
}

// Day is the calendar bucket key, the first ten characters of Date.
func (t Trade) Day() string { return prefix(t.Date, 10) }

// Month is the YYYY-MM bucket key.
func (t Trade) Month() string { return prefix(t.Date, 7) }

// Hour is the HH:00 bucket key. Trades without a time land in 00:00.
func (t Trade) Hour() string {
	if len(t.Time) < 2 {
		return Midnight
	}
	return t.Time[:2] + ":00"
}

// Weekday parses Date and returns its day of week.
func (t Trade) Weekday() (time.Weekday, bool) {
	d, err := time.Parse(DateLayout, t.Day())
	if err != nil {
		return 0, false
	}
	return d.Weekday(), true
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

type tradeJSON struct {
	ID         string              `json:"id"`
	Symbol     string              `json:"symbol"`
	Direction  Direction           `json:"direction"`
	EntryPrice decimal.Decimal     `json:"entry_price"`
	ExitPrice  decimal.Decimal     `json:"exit_price"`
	LotSize    decimal.Decimal     `json:"lot_size"`
	Date       string              `json:"date"`
	Time       string              `json:"time,omitempty"`
	StopLoss   decimal.NullDecimal `json:"stop_loss"`
	Notes      string              `json:"notes,omitempty"`
	Pips       decimal.Decimal     `json:"pips"`
	Profit     decimal.Decimal     `json:"profit"`
}

// MarshalJSON exposes the derived fields read-only.
func (t Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(tradeJSON{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Direction:  t.Direction,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		LotSize:    t.LotSize,
		Date:       t.Date,
		Time:       t.Time,
		StopLoss:   t.StopLoss,
		Notes:      t.Notes,
		Pips:       t.pips,
		Profit:     t.profit,
	})
}
