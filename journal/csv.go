package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/tradelog/trade"
)

// CSVHeader is the column order written by WriteCSV.
var CSVHeader = []string{
	"id", "date", "time", "symbol", "direction",
	"entry_price", "exit_price", "lot_size", "stop_loss",
	"pips", "profit", "notes",
}

var requiredColumns = []string{"date", "symbol", "direction", "entry_price", "exit_price", "lot_size"}

// WriteCSV writes trades with a header row. Pips carry one decimal and
// profit two, matching how they are displayed.
func WriteCSV(w io.Writer, trades []trade.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, t := range trades {
		stop := ""
		if t.StopLoss.Valid {
			stop = t.StopLoss.Decimal.String()
		}
		if err := cw.Write([]string{
			t.ID,
			t.Date,
			t.Time,
			t.Symbol,
			string(t.Direction),
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			t.LotSize.String(),
			stop,
			t.Pips().StringFixed(1),
			t.Profit().StringFixed(2),
			t.Notes,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows into raw inputs keyed by header name, so columns may
// come in any order. The id, pips and profit columns are ignored; imported
// trades get fresh IDs and are repriced.
func ReadCSV(r io.Reader) ([]trade.Input, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty csv", ErrInvalidInput)
		}
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidInput, name)
		}
	}

	var out []trade.Input
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		out = append(out, trade.Input{
			Symbol:     get("symbol"),
			Direction:  get("direction"),
			EntryPrice: trade.Field(get("entry_price")),
			ExitPrice:  trade.Field(get("exit_price")),
			LotSize:    trade.Field(get("lot_size")),
			Date:       get("date"),
			Time:       get("time"),
			StopLoss:   trade.Field(get("stop_loss")),
			Notes:      get("notes"),
		})
	}
	return out, nil
}
