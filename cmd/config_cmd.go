// Package cmd implements the cashburn CLI commands.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Example: `  cashburn config set general.statement_dir ~/statements
  cashburn config set appearance.currency €
  cashburn config set tui.auto_refresh false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Ledger file:   %s\n", config.DataFilePath(cfg))
	fmt.Printf("    Alert window:  %dd\n", cfg.General.UpcomingDays)
	if cfg.General.StatementDir != "" {
		fmt.Printf("    Statement dir: %s\n", cfg.General.StatementDir)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Currency: %s\n", cfg.Appearance.Currency)
	fmt.Println()

	fmt.Println("  [Gemini]")
	apiKey := config.GetGeminiAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key: %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key: not configured")
	}
	if cfg.Gemini.Model != "" {
		fmt.Printf("    Model:   %s\n", cfg.Gemini.Model)
	}
	fmt.Println()

	fmt.Println("  [Scenario]")
	fmt.Printf("    Delay days: %d\n", cfg.Scenario.DelayDays)
	if cfg.Scenario.WhatIf > 0 {
		fmt.Printf("    What-if:    %s%.2f\n", cfg.Appearance.Currency, cfg.Scenario.WhatIf)
	}
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh: %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Interval:     %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  Run `cashburn setup` to reconfigure.")
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg := loadConfig()
	if err := applyConfigValue(&cfg, key, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("\n  Set %s\n", key)
	return nil
}

// applyConfigValue writes one dotted-key value into cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "general.data_file":
		cfg.General.DataFile = value
	case "general.upcoming_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 90 {
			return fmt.Errorf("%s wants a day count between 1 and 90", key)
		}
		cfg.General.UpcomingDays = n
	case "general.statement_dir":
		cfg.General.StatementDir = value
	case "appearance.theme":
		cfg.Appearance.Theme = value
	case "appearance.currency":
		cfg.Appearance.Currency = value
	case "gemini.api_key":
		cfg.Gemini.APIKey = value
	case "gemini.model":
		cfg.Gemini.Model = value
	case "scenario.delay_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s wants a non-negative day count", key)
		}
		cfg.Scenario.DelayDays = n
	case "scenario.what_if":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("%s wants a non-negative amount", key)
		}
		cfg.Scenario.WhatIf = v
	case "tui.auto_refresh":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s wants true or false", key)
		}
		cfg.TUI.AutoRefresh = b
	case "tui.refresh_interval_sec":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 3600 {
			return fmt.Errorf("%s wants seconds between 1 and 3600", key)
		}
		cfg.TUI.RefreshIntervalSec = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
