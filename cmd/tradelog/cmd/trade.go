package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/tradelog/backtest"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/risk"
	"github.com/rustyeddy/tradelog/trade"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and query journaled trades",
	Long: `Add, edit, delete and display trades in the journal.

Examples:
  tradelog trade add --symbol EUR/USD --direction long --entry 1.1000 --exit 1.1050 --lots 1
  tradelog trade list --start 2024-03-01 --symbol EUR/USD
  tradelog trade show <trade-id> --org
  tradelog trade import trades.csv`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Journal a closed trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Change a trade; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeEdit,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Remove a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from CSV; nothing is written if any row is bad",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeImport,
}

var tradeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write trades as CSV",
	Args:  cobra.NoArgs,
	RunE:  runTradeExport,
}

var tradeRepriceCmd = &cobra.Command{
	Use:   "reprice",
	Short: "Recompute pips and profit with the current instruments and rates",
	Args:  cobra.NoArgs,
	RunE:  runTradeReprice,
}

var (
	tradeIn     trade.Input
	tradeOrg    bool
	tradeFilter backtest.Filter
	tradeOutput string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd, tradeEditCmd, tradeDeleteCmd, tradeShowCmd,
		tradeListCmd, tradeImportCmd, tradeExportCmd, tradeRepriceCmd)

	for _, c := range []*cobra.Command{tradeAddCmd, tradeEditCmd} {
		f := c.Flags()
		f.StringVarP(&tradeIn.Symbol, "symbol", "s", "", "instrument, e.g. EUR/USD")
		f.StringVar(&tradeIn.Direction, "direction", "", "long or short")
		f.StringVar((*string)(&tradeIn.EntryPrice), "entry", "", "entry price")
		f.StringVar((*string)(&tradeIn.ExitPrice), "exit", "", "exit price")
		f.StringVar((*string)(&tradeIn.LotSize), "lots", "", "position size in lots")
		f.StringVar(&tradeIn.Date, "date", "", "close date YYYY-MM-DD (default today)")
		f.StringVar(&tradeIn.Time, "time", "", "close time HH:MM")
		f.StringVar((*string)(&tradeIn.StopLoss), "stop", "", "stop-loss price")
		f.StringVar(&tradeIn.Notes, "notes", "", "free-form notes")
	}
	tradeAddCmd.MarkFlagRequired("symbol")
	tradeAddCmd.MarkFlagRequired("direction")
	tradeAddCmd.MarkFlagRequired("entry")
	tradeAddCmd.MarkFlagRequired("exit")
	tradeAddCmd.MarkFlagRequired("lots")

	for _, c := range []*cobra.Command{tradeAddCmd, tradeEditCmd, tradeShowCmd, tradeListCmd} {
		c.Flags().BoolVar(&tradeOrg, "org", false, "print as Org-mode entries")
	}
	for _, c := range []*cobra.Command{tradeListCmd, tradeExportCmd} {
		addFilterFlags(c, &tradeFilter)
	}
	tradeExportCmd.Flags().StringVarP(&tradeOutput, "output", "o", "", "output file (default stdout)")
}

func addFilterFlags(c *cobra.Command, f *backtest.Filter) {
	c.Flags().StringVar(&f.Start, "start", "", "first date YYYY-MM-DD (inclusive)")
	c.Flags().StringVar(&f.End, "end", "", "last date YYYY-MM-DD (inclusive)")
	c.Flags().StringVar(&f.Symbol, "symbol", backtest.AllSymbols, "symbol or \"all\"")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	in := tradeIn
	if in.Date == "" {
		in.Date = time.Now().Format(trade.DateLayout)
	}
	t, err := book.Add(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}
	return printTrades(cmd.OutOrStdout(), book, []trade.Trade{t})
}

func runTradeEdit(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	cur, err := book.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	in := trade.FromTrade(cur)
	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("symbol", &in.Symbol, tradeIn.Symbol)
	set("direction", &in.Direction, tradeIn.Direction)
	set("entry", (*string)(&in.EntryPrice), string(tradeIn.EntryPrice))
	set("exit", (*string)(&in.ExitPrice), string(tradeIn.ExitPrice))
	set("lots", (*string)(&in.LotSize), string(tradeIn.LotSize))
	set("date", &in.Date, tradeIn.Date)
	set("time", &in.Time, tradeIn.Time)
	set("stop", (*string)(&in.StopLoss), string(tradeIn.StopLoss))
	set("notes", &in.Notes, tradeIn.Notes)

	t, err := book.Edit(cmd.Context(), args[0], in)
	if err != nil {
		return fmt.Errorf("edit trade: %w", err)
	}
	return printTrades(cmd.OutOrStdout(), book, []trade.Trade{t})
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := book.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := book.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	return printTrades(cmd.OutOrStdout(), book, []trade.Trade{t})
}

func runTradeList(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := book.Between(cmd.Context(), tradeFilter.Start, tradeFilter.End)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	return printTrades(cmd.OutOrStdout(), book, backtest.Sort(tradeFilter.Apply(trades)))
}

func runTradeImport(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	inputs, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	trades, err := book.Import(cmd.Context(), inputs)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d trades\n", len(trades))
	return nil
}

func runTradeExport(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := book.Between(cmd.Context(), tradeFilter.Start, tradeFilter.End)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	trades = backtest.Sort(tradeFilter.Apply(trades))

	if tradeOutput == "" {
		return journal.WriteCSV(cmd.OutOrStdout(), trades)
	}
	f, err := os.Create(tradeOutput)
	if err != nil {
		return err
	}
	if err := journal.WriteCSV(f, trades); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runTradeReprice(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := book.Reprice(cmd.Context())
	if err != nil {
		return fmt.Errorf("reprice: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "repriced %d trades\n", n)
	return nil
}

func printTrades(w io.Writer, book *journal.Book, trades []trade.Trade) error {
	ref := book.Reference()
	if tradeOrg {
		loss := func(t trade.Trade) decimal.Decimal { return risk.PossibleLoss(t, ref.Catalog, ref.Rates) }
		_, err := fmt.Fprintln(w, journal.FormatTradesOrg(trades, loss))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tSYMBOL\tDIR\tLOTS\tENTRY\tEXIT\tPIPS\tPROFIT")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date, t.Time, t.Symbol, t.Direction, t.LotSize,
			t.EntryPrice, t.ExitPrice, t.Pips().StringFixed(1), t.Profit().StringFixed(2))
	}
	return tw.Flush()
}
