package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradelog",
	Short: "A forex trade journal with P/L and backtest analytics",
	Long: `Tradelog journals closed forex trades and analyzes them.

It provides tools for:
  - Recording trades with pips and profit computed in the settlement currency
  - Backtest statistics over any date range and symbol
  - Monthly profit calendars and compressed calendar exports
  - Risk-based position sizing
  - A JSON API over the same journal

Configuration is read from --config, $TRADELOG_CONFIG or built-in defaults.
A .env file in the working directory is loaded first.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile    string
	rootDBPath string
	rootLogLvl string
	envFile    string
	loadedCfg  *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or JSON (default $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().StringVarP(&rootDBPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootLogLvl, "log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if rootDBPath != "" {
		cfg.Journal.DBPath = rootDBPath
	}
	if rootLogLvl != "" {
		if _, err := logger.ParseLevel(rootLogLvl); err != nil {
			return err
		}
		cfg.Log.Level = rootLogLvl
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(cfg.Log.Level)
	loadedCfg = cfg
	return nil
}

// openBook opens the configured journal. The caller closes the store.
func openBook() (*journal.Book, *journal.SQLite, error) {
	cfg := loadedCfg
	if cfg == nil {
		cfg = config.Default()
	}
	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	book := journal.NewBook(store, cfg.Reference(), journal.WithStrictSymbols(cfg.Journal.StrictSymbols))
	return book, store, nil
}
