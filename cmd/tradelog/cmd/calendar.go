package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradelog/backtest"
	"github.com/rustyeddy/tradelog/calendar"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show daily profit for a month",
	Long: `Calendar prints one line per day of the month with the trade count
and net profit.

Examples:
  tradelog calendar --month 2024-03
  tradelog calendar export --symbol EUR/USD -o days.txt.xz
  tradelog calendar load days.txt.xz`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var calendarExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write day buckets as date|count|profit|symbols lines",
	Long: `Export writes one line per traded day. Output files ending in .xz or
.lzma are compressed.`,
	Args: cobra.NoArgs,
	RunE: runCalendarExport,
}

var calendarLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Validate and print a calendar export file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalendarLoad,
}

var (
	calMonth  string
	calFilter backtest.Filter
	calOutput string
)

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.AddCommand(calendarExportCmd, calendarLoadCmd)

	calendarCmd.Flags().StringVarP(&calMonth, "month", "m", "", "month YYYY-MM (default current month)")
	addFilterFlags(calendarExportCmd, &calFilter)
	calendarExportCmd.Flags().StringVarP(&calOutput, "output", "o", "", "output file (default stdout)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	month := calMonth
	if month == "" {
		month = calendar.CurrentMonth(time.Now())
	}
	span := calendar.MonthDays(month)
	if span == nil {
		return fmt.Errorf("month %q: want YYYY-MM", month)
	}

	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := book.Between(cmd.Context(), span[0], span[len(span)-1])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	days := calendar.AggregateByDay(trades, month)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Calendar %s\n", month)
	for _, day := range days.Keys() {
		b := days[day]
		if b.Count == 0 {
			fmt.Fprintf(w, "%s  %3s  %12s\n", day, "-", "-")
			continue
		}
		fmt.Fprintf(w, "%s  %3d  %12s\n", day, b.Count, b.Profit.StringFixed(2))
	}
	win, lose := days.WinLoss()
	fmt.Fprintf(w, "Winning days: %d  Losing days: %d\n", win, lose)
	return nil
}

func runCalendarExport(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := book.Between(cmd.Context(), calFilter.Start, calFilter.End)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	res := backtest.Run(trades, calFilter)
	records := calendar.Export(res.TradesByDay, res.Trades)

	if calOutput == "" {
		return calendar.WriteExport(cmd.OutOrStdout(), records)
	}
	if err := calendar.SaveExport(calOutput, records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d days to %s\n", len(records), calOutput)
	return nil
}

func runCalendarLoad(cmd *cobra.Command, args []string) error {
	records, err := calendar.LoadExport(args[0])
	if err != nil {
		return err
	}
	return calendar.WriteExport(cmd.OutOrStdout(), records)
}
