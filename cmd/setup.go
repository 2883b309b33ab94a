package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	ledger, err := openLedger()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Welcome to cashburn!")
	fmt.Println()
	if count := ledger.Count(); count > 0 {
		fmt.Printf("  Found %d transactions in %s\n\n", count, ledger.Path())
	}

	// 1. Gemini API key
	fmt.Println("  1. Gemini API key")
	fmt.Println("     For pulling transactions out of bank statements.")
	existing := config.GetGeminiAPIKey(cfg)
	if existing != "" {
		fmt.Printf("     Current: %s\n", maskAPIKey(existing))
	}
	fmt.Print("     > ")
	apiKey, _ := reader.ReadString('\n')
	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" {
		cfg.Gemini.APIKey = apiKey
	}
	fmt.Println()

	// 2. Alert window
	fmt.Println("  2. Alert window")
	fmt.Println("     (1) 7 days [default]")
	fmt.Println("     (2) 14 days")
	fmt.Println("     (3) 30 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)
	switch choice {
	case "2":
		cfg.General.UpcomingDays = 14
	case "3":
		cfg.General.UpcomingDays = 30
	default:
		cfg.General.UpcomingDays = 7
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Gruvbox Dark")
	fmt.Println("     (3) Nord")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	themeChoice = strings.TrimSpace(themeChoice)
	switch themeChoice {
	case "2":
		cfg.Appearance.Theme = "gruvbox-dark"
	case "3":
		cfg.Appearance.Theme = "nord"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}
	fmt.Println()

	// 4. Starting balance, only when the ledger is fresh
	if ledger.Count() == 0 {
		fmt.Println("  4. Current cash balance")
		fmt.Println("     Projections start from this number. Leave empty to skip.")
		fmt.Print("     > ")
		balanceStr, _ := reader.ReadString('\n')
		balanceStr = strings.TrimSpace(balanceStr)
		if balanceStr != "" {
			amount, err := parseAmount(balanceStr)
			if err != nil {
				fmt.Println("     Not a number, skipping.")
			} else if err := ledger.SetStartingBalance(amount); err != nil {
				return err
			} else {
				fmt.Printf("     Balance set to %s\n", cli.FormatMoney(amount, currencySymbol()))
			}
		}
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `cashburn setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
