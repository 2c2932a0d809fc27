package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/tradelog/backtest"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Compute performance statistics over journaled trades",
	Long: `Backtest filters the journal by date range and symbol and reports
win rate, profit factor, drawdown, streaks and per-symbol, per-month and
per-hour breakdowns.

Examples:
  tradelog backtest --start 2024-01-01 --end 2024-03-31
  tradelog backtest --symbol EUR/USD --json
  tradelog backtest --org --title "Q1 review" >> journal.org`,
	Args: cobra.NoArgs,
	RunE: runBacktest,
}

var (
	btFilter backtest.Filter
	btJSON   bool
	btOrg    bool
	btTitle  string
	btNotes  []string
	btOutput string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	addFilterFlags(backtestCmd, &btFilter)
	backtestCmd.Flags().BoolVar(&btJSON, "json", false, "print the result as JSON")
	backtestCmd.Flags().BoolVar(&btOrg, "org", false, "print the result as an Org-mode section")
	backtestCmd.Flags().StringVar(&btTitle, "title", "Backtest", "org: section title")
	backtestCmd.Flags().StringSliceVar(&btNotes, "note", nil, "org: note line (repeatable)")
	backtestCmd.Flags().StringVarP(&btOutput, "output", "o", "", "output file (default stdout)")
	backtestCmd.MarkFlagsMutuallyExclusive("json", "org")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := book.Between(cmd.Context(), btFilter.Start, btFilter.End)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	res := backtest.Run(trades, btFilter)

	w := cmd.OutOrStdout()
	if btOutput != "" {
		f, err := os.Create(btOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch {
	case btJSON:
		symbols, err := book.Symbols(cmd.Context())
		if err != nil {
			return fmt.Errorf("query symbols: %w", err)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Filter        backtest.Filter `json:"filter"`
			Symbols       []string        `json:"symbols"`
			TradedSymbols []string        `json:"traded_symbols"`
			Result        backtest.Result `json:"result"`
		}{btFilter, symbols, backtest.Symbols(res.Trades), res})
	case btOrg:
		return backtest.WriteOrg(w, backtest.Report{
			Title:   btTitle,
			Filter:  btFilter,
			Result:  res,
			Created: time.Now(),
			Notes:   btNotes,
		})
	default:
		backtest.PrintResult(w, btFilter, res)
		return nil
	}
}
