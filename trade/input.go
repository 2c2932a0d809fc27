package trade

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalid is wrapped by every validation failure in Input.Parse.
var ErrInvalid = errors.New("invalid trade")

// symbolReserved holds characters that delimit calendar export lines.
const symbolReserved = "|, \t\r\n"

// Field is free-form text from a form, CSV cell or JSON body. In JSON it
// accepts both strings and bare numbers.
type Field string

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(data)
	return nil
}

// Input is a trade as typed by a user. Nothing in it is trusted until
// Parse has run.
type Input struct {
	Symbol     string `json:"symbol"`
	Direction  string `json:"direction"`
	EntryPrice Field  `json:"entry_price"`
	ExitPrice  Field  `json:"exit_price"`
	LotSize    Field  `json:"lot_size"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	StopLoss   Field  `json:"stop_loss,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// FromTrade returns the editable form of t.
func FromTrade(t Trade) Input {
	in := Input{
		Symbol:     t.Symbol,
		Direction:  string(t.Direction),
		EntryPrice: Field(t.EntryPrice.String()),
		ExitPrice:  Field(t.ExitPrice.String()),
		LotSize:    Field(t.LotSize.String()),
		Date:       t.Date,
		Time:       t.Time,
		Notes:      t.Notes,
	}
	if t.StopLoss.Valid {
		in.StopLoss = Field(t.StopLoss.Decimal.String())
	}
	return in
}

// Parse validates the input and returns a typed trade with no ID and no
// derived fields. All field errors are reported together.
func (in Input) Parse() (Trade, error) {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	t := Trade{
		Symbol: strings.ToUpper(strings.TrimSpace(in.Symbol)),
		Notes:  in.Notes,
	}
	if t.Symbol == "" {
		add(fmt.Errorf("%w: symbol is required", ErrInvalid))
	} else if strings.ContainsAny(t.Symbol, symbolReserved) {
		add(fmt.Errorf("%w: symbol %q may not contain '|', ',' or whitespace", ErrInvalid, t.Symbol))
	}

	var err error
	t.Direction, err = ParseDirection(in.Direction)
	add(err)

	t.EntryPrice, err = positive("entry_price", string(in.EntryPrice))
	add(err)
	t.ExitPrice, err = positive("exit_price", string(in.ExitPrice))
	add(err)
	t.LotSize, err = positive("lot_size", string(in.LotSize))
	add(err)

	t.Date, err = parseDate(in.Date)
	add(err)
	t.Time, err = parseTime(in.Time)
	add(err)

	if s := strings.TrimSpace(string(in.StopLoss)); s != "" {
		stop, err := positive("stop_loss", s)
		add(err)
		t.StopLoss = decimal.NullDecimal{Decimal: stop, Valid: err == nil}
	}

	if len(errs) > 0 {
		return Trade{}, errors.Join(errs...)
	}
	return t, nil
}

func positive(name, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", ErrInvalid, name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", ErrInvalid, name, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s %q must be positive", ErrInvalid, name, s)
	}
	return d, nil
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalid, s)
	}
	return d.Format(DateLayout), nil
}

func parseTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	tm, err := time.Parse(TimeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: time %q must be HH:MM", ErrInvalid, s)
	}
	return tm.Format(TimeLayout), nil
}
