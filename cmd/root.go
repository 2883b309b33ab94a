package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/config"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/pipeline"
	"github.com/theirongolddev/cashburn/internal/store"
)

var (
	flagDataFile  string
	flagUpcoming  int
	flagQuiet     bool
	flagScenario  string
	flagDelayDays int
	flagWhatIf    string
)

var rootCmd = &cobra.Command{
	Use:   "cashburn",
	Short: "Cash-Flow Projection CLI",
	Long:  "Project your cash balance forward: transactions, scenarios, health score, and more.",
	RunE:  runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env in the working directory can carry GEMINI_API_KEY and
	// CASHBURN_DATA_FILE.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&flagDataFile, "data-file", "f", "", "Ledger file (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagUpcoming, "upcoming", "n", 0, "Alert window in days (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	addScenarioFlags(rootCmd)
}

// addScenarioFlags registers the scenario knobs on commands that run the
// projection pipeline.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagScenario, "scenario", "base", "Scenario to apply: base or payment-delays")
	cmd.Flags().IntVar(&flagDelayDays, "delay-days", 7, "Days to delay pending income under payment-delays")
	cmd.Flags().StringVar(&flagWhatIf, "what-if", "", "One-off expense to inject three days out, e.g. 500 or 1,200.50")
}

// loadConfig returns the saved config, or the defaults when no config file
// exists yet.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// dataFilePath resolves the ledger path: flag, then env/config/default.
func dataFilePath() string {
	if flagDataFile != "" {
		return flagDataFile
	}
	return config.DataFilePath(loadConfig())
}

// openLedger is the shared load path used by all commands.
func openLedger() (*store.Ledger, error) {
	ledger, err := store.OpenLedger(dataFilePath())
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return ledger, nil
}

// upcomingDays resolves the alert window: flag, then config, then default.
func upcomingDays() int {
	if flagUpcoming > 0 {
		return flagUpcoming
	}
	if n := loadConfig().General.UpcomingDays; n > 0 {
		return n
	}
	return pipeline.DefaultUpcomingDays
}

// scenarioParams builds the scenario knobs from flags. An unknown scenario
// name or a malformed what-if amount is an error rather than a silent base
// run.
func scenarioParams() (pipeline.ScenarioParams, error) {
	p := pipeline.ScenarioParams{DelayDays: flagDelayDays}

	switch flagScenario {
	case "", string(pipeline.ScenarioBase):
		p.Scenario = pipeline.ScenarioBase
	case string(pipeline.ScenarioDelays):
		p.Scenario = pipeline.ScenarioDelays
	default:
		return p, fmt.Errorf("unknown scenario %q (want base or payment-delays)", flagScenario)
	}

	if flagWhatIf != "" {
		amount, err := parseAmount(flagWhatIf)
		if err != nil {
			return p, fmt.Errorf("invalid --what-if amount: %w", err)
		}
		if amount.IsNegative() {
			return p, fmt.Errorf("--what-if amount must not be negative")
		}
		p.WhatIfExpense = amount
	}

	return p, nil
}

// runPipeline loads the ledger and runs the projection with the
// flag-selected scenario. Shared by the dashboard and projection commands.
func runPipeline() (*store.Ledger, pipeline.Result, error) {
	scen, err := scenarioParams()
	if err != nil {
		return nil, pipeline.Result{}, err
	}

	ledger, err := openLedger()
	if err != nil {
		return nil, pipeline.Result{}, err
	}

	txs, balance := ledger.Snapshot()
	result := pipeline.Run(txs, balance, pipeline.Params{
		Scenario:     scen,
		Today:        model.Today(),
		UpcomingDays: upcomingDays(),
	})
	return ledger, result, nil
}

func currencySymbol() string {
	if c := loadConfig().Appearance.Currency; c != "" {
		return c
	}
	return "$"
}

// parseAmount accepts "1,200.50", "$1200.50", or "1200.5".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), currencySymbol())
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ',', '$', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return decimal.NewFromString(b.String())
}
