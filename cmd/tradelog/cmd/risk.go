package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/risk"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Position sizing",
}

var riskSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position so the stop loses a fixed share of equity",
	Long: `Size computes the lot size at which hitting the stop loses risk% of
equity. Lots are rounded down to 0.01.

Example:
  tradelog risk size --equity 10000 --risk 0.01 --symbol EUR/USD --entry 1.1000 --stop 1.0950`,
	Args: cobra.NoArgs,
	RunE: runRiskSize,
}

var (
	riskEquity string
	riskPct    string
	riskSymbol string
	riskEntry  string
	riskStop   string
)

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.AddCommand(riskSizeCmd)

	f := riskSizeCmd.Flags()
	f.StringVar(&riskEquity, "equity", "", "account equity in the settlement currency")
	f.StringVar(&riskPct, "risk", "0.01", "fraction of equity to risk (0.01 = 1%)")
	f.StringVarP(&riskSymbol, "symbol", "s", "", "instrument, e.g. EUR/USD")
	f.StringVar(&riskEntry, "entry", "", "entry price")
	f.StringVar(&riskStop, "stop", "", "stop-loss price")
	for _, name := range []string{"equity", "symbol", "entry", "stop"} {
		riskSizeCmd.MarkFlagRequired(name)
	}
}

func runRiskSize(cmd *cobra.Command, args []string) error {
	var in risk.Inputs
	in.Symbol = riskSymbol
	for _, p := range []struct {
		name string
		src  string
		dst  *decimal.Decimal
	}{
		{"equity", riskEquity, &in.Equity},
		{"risk", riskPct, &in.RiskPct},
		{"entry", riskEntry, &in.EntryPrice},
		{"stop", riskStop, &in.StopPrice},
	} {
		v, err := decimal.NewFromString(p.src)
		if err != nil {
			return fmt.Errorf("--%s: %w", p.name, err)
		}
		*p.dst = v
	}

	cfg := loadedCfg
	if cfg == nil {
		cfg = config.Default()
	}
	res, err := risk.Calculate(in, cfg.Reference())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Lots:            %s\n", res.Lots.StringFixed(2))
	fmt.Fprintf(w, "Stop distance:   %s pips\n", res.StopPips.StringFixed(1))
	fmt.Fprintf(w, "Risk amount:     %s %s\n", res.RiskAmount.StringFixed(2), cfg.Settlement)
	fmt.Fprintf(w, "Pip value / lot: %s %s\n", res.PipValuePerLot.StringFixed(2), cfg.Settlement)
	return nil
}
