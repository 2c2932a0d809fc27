package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradelog/pkg/id"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
)

// FormatTradeOrg renders a trade as an Org-mode entry. Structured facts
// go in the PROPERTIES drawer; the narrative headings are left for the
// trader to fill in.
func FormatTradeOrg(t trade.Trade, possibleLoss decimal.Decimal) string {
	when := t.Date
	if t.HasTime() {
		when += " " + t.Time
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s (%s)\n", t.Symbol, t.Direction, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	if at, err := id.Time(t.ID); err == nil {
		fmt.Fprintf(&b, ":JOURNALED: [%s]\n", at.Format("2006-01-02 Mon 15:04"))
	}
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":DATE: %s\n", when)
	fmt.Fprintf(&b, ":LOT_SIZE: %s\n", t.LotSize)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %s\n", t.EntryPrice)
	fmt.Fprintf(&b, ":EXIT_PRICE: %s\n", t.ExitPrice)
	if t.StopLoss.Valid {
		fmt.Fprintf(&b, ":STOP_LOSS: %s\n", t.StopLoss.Decimal)
		fmt.Fprintf(&b, ":POSSIBLE_LOSS: %s\n", possibleLoss.StringFixed(2))
	}
	fmt.Fprintf(&b, ":PIPS: %s\n", t.Pips().StringFixed(1))
	fmt.Fprintf(&b, ":PROFIT: %s\n", t.Profit().StringFixed(2))
	b.WriteString(":END:\n\n")

	b.WriteString("*** Thesis\n")
	if t.Notes != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Notes)
	} else {
		b.WriteString("- \n\n")
	}
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders trades separated by blank lines. loss may be nil.
func FormatTradesOrg(trades []trade.Trade, loss func(trade.Trade) decimal.Decimal) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		pl := decimal.Zero
		if loss != nil {
			pl = loss(t)
		}
		b.WriteString(FormatTradeOrg(t, pl))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
