package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradelog/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage tradelog configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradelog config init -o tradelog.yaml
  tradelog config validate -f tradelog.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with the built-in instruments and rates.

Example:
  tradelog config init -o tradelog.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  tradelog config validate -f tradelog.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "tradelog.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(w, "\nEdit the file and run with:")
	fmt.Fprintf(w, "  tradelog --config %s dashboard\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(w, "  Settlement: %s\n", cfg.Settlement)
	fmt.Fprintf(w, "  Instruments: %d  Rates: %d\n", len(cfg.Instruments), len(cfg.Rates))
	fmt.Fprintf(w, "  Journal: %s\n", cfg.Journal.DBPath)
	return nil
}
