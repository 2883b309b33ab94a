package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
	"github.com/theirongolddev/cashburn/internal/model"
	"github.com/theirongolddev/cashburn/internal/pipeline"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Cash-flow dashboard with health score and alerts",
	RunE:  runDashboard,
}

func init() {
	addScenarioFlags(dashboardCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	ledger, result, err := runPipeline()
	if err != nil {
		return err
	}

	if ledger.Count() == 0 {
		fmt.Println("\n  No transactions yet.")
		fmt.Println("  Add one with 'cashburn add', or pull them from a bank statement")
		fmt.Println("  with 'cashburn statement import'.")
		return nil
	}

	cur := currencySymbol()
	health := result.Health

	// Render output
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW  Next %dd", upcomingDays())))
	if note := scenarioNote(); note != "" {
		fmt.Printf("  %s\n", note)
	}
	fmt.Println()

	// Build the health table
	minDate, minBal := lowestPoint(result.Points)
	rows := [][]string{
		{"Balance", cli.FormatMoney(health.CurrentBalance, cur)},
		{"Health Score", fmt.Sprintf("%d/100", health.HealthScore)},
		{"---"},
		{"Lowest Point", fmt.Sprintf("%s on %s", cli.FormatMoney(minBal, cur), cli.FormatDate(minDate))},
		{"Days to Danger", cli.FormatDangerDays(health.DaysUntilDanger)},
		{"Monthly Runway", cli.FormatRunway(health.MonthlyRunway)},
		{"Daily Trend", fmt.Sprintf("%s/day", cli.FormatTrend(health.TrendDirection, cur))},
		{"---"},
		{"Transactions", cli.FormatNumber(int64(ledger.Count()))},
		{"Pending", cli.FormatNumber(int64(countByStatus(result.Transactions, model.Pending)))},
	}

	table := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
	fmt.Print(cli.RenderTable(table))

	fmt.Println()
	fmt.Printf("  Health %s\n", cli.RenderProgressBar(health.HealthScore, 100, 32))

	// Projection sparkline over the next 90 days
	if len(result.Points) > 1 {
		vals := make([]float64, 0, len(result.Points))
		for i, pt := range result.Points {
			if i > 90 {
				break
			}
			vals = append(vals, pt.Balance.InexactFloat64())
		}
		fmt.Println()
		fmt.Printf("  %s\n", cli.RenderSparkline(vals))
		fmt.Printf("  90d projection, low %s\n", cli.FormatMoney(minBal, cur))
	}

	if len(result.Alerts) > 0 {
		printAlerts(result.Alerts, cur)
	}

	return nil
}

// scenarioNote describes the active scenario knobs for the header, empty
// for a plain base run.
func scenarioNote() string {
	note := ""
	if flagScenario == string(pipeline.ScenarioDelays) {
		note = fmt.Sprintf("scenario: payment delays +%dd", flagDelayDays)
	}
	if amount, err := parseAmount(flagWhatIf); flagWhatIf != "" && err == nil && amount.IsPositive() {
		if note != "" {
			note += ", "
		}
		note += fmt.Sprintf("what-if expense %s", cli.FormatMoney(amount, currencySymbol()))
	}
	return note
}

func printAlerts(alerts []pipeline.Alert, cur string) {
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		due := ""
		switch {
		case a.Kind == pipeline.AlertOverdue:
			due = fmt.Sprintf("%dd late", -a.DaysOut)
		case a.DaysOut == 0:
			due = "today"
		default:
			due = fmt.Sprintf("in %dd", a.DaysOut)
		}
		rows = append(rows, []string{
			due,
			truncate(a.Transaction.Description, 32),
			cli.FormatMoney(a.Transaction.Amount, cur),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "ALERTS",
		Headers: []string{"Due", "Transaction", "Amount"},
		Rows:    rows,
	}))
}

// lowestPoint scans the projection for the day the balance bottoms out.
func lowestPoint(points []model.ProjectionPoint) (model.Date, decimal.Decimal) {
	if len(points) == 0 {
		return model.Today(), decimal.Zero
	}
	minDate, minBal := points[0].Date, points[0].Balance
	for _, pt := range points[1:] {
		if pt.Balance.LessThan(minBal) {
			minDate, minBal = pt.Date, pt.Balance
		}
	}
	return minDate, minBal
}

func countByStatus(txs []model.Transaction, status model.TxStatus) int {
	n := 0
	for _, tx := range txs {
		if tx.Status == status {
			n++
		}
	}
	return n
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
