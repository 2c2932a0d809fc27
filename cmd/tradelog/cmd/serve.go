package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rustyeddy/tradelog/api"
	"github.com/rustyeddy/tradelog/backtest"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal and analytics as a JSON API",
	Long: `Serve starts an HTTP server exposing trades, backtests, calendars and
the dashboard under /api. It stops cleanly on SIGINT or SIGTERM.

Example:
  tradelog serve --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr          string
	serveStatsInterval time.Duration
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	serveCmd.Flags().DurationVar(&serveStatsInterval, "stats-interval", 0, "log a journal summary this often (0 disables)")
}

func runServe(cmd *cobra.Command, args []string) error {
	book, store, err := openBook()
	if err != nil {
		return err
	}
	defer store.Close()

	addr := serveAddr
	if addr == "" && loadedCfg != nil {
		addr = loadedCfg.Server.Addr
	}
	srv, err := api.NewServer(api.Config{Addr: addr, Book: book})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	if serveStatsInterval > 0 {
		group.Go(func() error {
			return logStats(ctx, book, serveStatsInterval)
		})
	}
	return group.Wait()
}

// logStats periodically logs a one-line summary of the journal until ctx ends.
func logStats(ctx context.Context, book *journal.Book, every time.Duration) error {
	log := logger.With("component", "stats")
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			trades, err := book.Snapshot(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("snapshot: %w", err)
			}
			r := backtest.Run(trades, backtest.Filter{})
			log.Info("journal",
				"trades", r.TotalTrades,
				"profit", r.TotalProfit.StringFixed(2),
				"max_drawdown", r.MaxDrawdown.StringFixed(2),
			)
		}
	}
}
