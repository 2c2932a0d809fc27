package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradelog/backtest"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "All-time statistics plus this month's calendar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, store, err := openBook()
		if err != nil {
			return err
		}
		defer store.Close()

		trades, err := book.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("query trades: %w", err)
		}
		backtest.PrintDashboard(cmd.OutOrStdout(), backtest.Overview(trades, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
