package calendar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

var ErrMalformed = errors.New("malformed export line")

// Record is one line of a calendar export.
type Record struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Profit  decimal.Decimal `json:"profit"`
	Symbols []string        `json:"symbols"`
}

// String renders date|count|profit|symbols with profit to two decimals.
func (r Record) String() string {
	return fmt.Sprintf("%s|%d|%s|%s", r.Date, r.Count, r.Profit.StringFixed(2), strings.Join(r.Symbols, ","))
}

// Export turns day buckets into records sorted by date. Each record's
// symbols are the distinct symbols traded that day among trades, in the
// order they first appear. Pass the same trades the buckets were built
// from so the two agree.
func Export(days Days, trades []trade.Trade) []Record {
	symbols := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, t := range trades {
		day := t.Day()
		if seen[day] == nil {
			seen[day] = make(map[string]bool)
		}
		if !seen[day][t.Symbol] {
			seen[day][t.Symbol] = true
			symbols[day] = append(symbols[day], t.Symbol)
		}
	}

	keys := days.Keys()
	out := make([]Record, 0, len(keys))
	for _, day := range keys {
		b := days[day]
		out = append(out, Record{
			Date:    day,
			Count:   b.Count,
			Profit:  b.Profit,
			Symbols: symbols[day],
		})
	}
	return out
}

// WriteExport writes one line per record.
func WriteExport(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := bw.WriteString(r.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseExport reads lines written by WriteExport. Blank lines are skipped;
// a date that appears twice is an error.
func ParseExport(r io.Reader) ([]Record, error) {
	var (
		out  []Record
		seen = make(map[string]bool)
		sc   = bufio.NewScanner(r)
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		rec, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[rec.Date] {
			return nil, fmt.Errorf("line %d: %w: duplicate date %s", line, ErrMalformed, rec.Date)
		}
		seen[rec.Date] = true
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseRecord(s string) (Record, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 {
		return Record{}, fmt.Errorf("%w: want 4 fields, got %d", ErrMalformed, len(parts))
	}

	var rec Record
	if _, err := time.Parse(trade.DateLayout, parts[0]); err != nil {
		return Record{}, fmt.Errorf("%w: date %q", ErrMalformed, parts[0])
	}
	rec.Date = parts[0]

	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return Record{}, fmt.Errorf("%w: count %q", ErrMalformed, parts[1])
	}
	rec.Count = n

	rec.Profit, err = decimal.NewFromString(parts[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: profit %q", ErrMalformed, parts[2])
	}

	if parts[3] != "" {
		rec.Symbols = strings.Split(parts[3], ",")
	}
	return rec, nil
}
