package backtest

import (
	"io"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

// Report is a titled backtest run for the Org-mode journal.
type Report struct {
	Title   string
	Filter  Filter
	Result  Result
	Created time.Time
	Notes   []string
}

var orgFuncs = template.FuncMap{
	"money":   money,
	"winRate": winRateText,
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"nullMoney": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return money(d.Decimal)
	},
	"keys": sortedKeys[int],
}

var orgTemplate = template.Must(template.New("backtest").Funcs(orgFuncs).Parse(OrgTemplate))

// WriteOrg renders rep as an Org-mode section.
func WriteOrg(w io.Writer, rep Report) error {
	return orgTemplate.Execute(w, rep)
}

const OrgTemplate = `* BACKTEST: {{if .Title}}{{.Title}}{{else}}{{orDash .Filter.Symbol}}{{end}}
:PROPERTIES:
:START_DATE:  {{orDash .Filter.Start}}
:END_DATE:    {{orDash .Filter.End}}
:SYMBOL:      {{orDash .Filter.Symbol}}
:TRADES:      {{.Result.TotalTrades}}
:WINS:        {{.Result.WinningTrades}}
:LOSSES:      {{.Result.LosingTrades}}
:WIN_RATE:    {{winRate .Result}}
:NET_PL:      {{money .Result.TotalProfit}}
:MAX_DD:      {{money .Result.MaxDrawdown}}
:PROFIT_FAC:  {{printf "%.2f" .Result.ProfitFactor}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Result.TotalProfit}}*
- Average P/L:      *{{nullMoney .Result.AverageProfit}}*
- Max Drawdown:     *{{money .Result.MaxDrawdown}}*
- Win Rate:         *{{winRate .Result}}%*
- Profit Factor:    *{{printf "%.2f" .Result.ProfitFactor}}*
- Risk/Reward:      *{{printf "%.2f" .Result.RiskRewardRatio}}*
- Streaks:          *{{.Result.MaxWinStreak}} wins / {{.Result.MaxLoseStreak}} losses*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Result.WinningTrades}} |
| Losses  | {{.Result.LosingTrades}} |
| Total   | {{.Result.TotalTrades}} |

** By Symbol
| Symbol | Trades |
|--------+--------|
{{- range $s := keys .Result.TradesBySymbol }}
| {{$s}} | {{index $.Result.TradesBySymbol $s}} |
{{- end }}

** Equity Curve
| Date | Cumulative |
|------+------------|
{{- range .Result.CumulativeProfit }}
| {{.Date}} | {{money .Profit}} |
{{- end }}
{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
