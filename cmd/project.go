package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashburn/internal/cli"
)

var flagProjectLimit int

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Daily balance projection table",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().IntVar(&flagProjectLimit, "limit", 30, "Days of projection to show")
	addScenarioFlags(projectCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, _ []string) error {
	ledger, result, err := runPipeline()
	if err != nil {
		return err
	}
	if ledger.Count() == 0 {
		fmt.Println("\n  No transactions yet.")
		return nil
	}

	points := result.Points
	if flagProjectLimit > 0 && len(points) > flagProjectLimit+1 {
		points = points[:flagProjectLimit+1]
	}
	if len(points) == 0 {
		fmt.Println("\n  Nothing to project.")
		return nil
	}

	cur := currencySymbol()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  Next %dd", len(points)-1)))
	if note := scenarioNote(); note != "" {
		fmt.Printf("  %s\n", note)
	}
	fmt.Println()

	rows := make([][]string, 0, len(points))
	for _, pt := range points {
		income := "·"
		if pt.DailyIncome.IsPositive() {
			income = cli.FormatMoney(pt.DailyIncome, cur)
		}
		expenses := "·"
		if pt.DailyExpenses.IsPositive() {
			expenses = cli.FormatMoney(pt.DailyExpenses, cur)
		}
		net := "·"
		if !pt.NetFlow.IsZero() {
			net = cli.FormatTrend(pt.NetFlow, cur)
		}
		rows = append(rows, []string{
			pt.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(int(pt.Date.Time().Weekday())),
			income,
			expenses,
			net,
			cli.FormatMoney(pt.Balance, cur),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Income", "Expenses", "Net", "Balance"},
		Rows:    rows,
	}))

	return nil
}
